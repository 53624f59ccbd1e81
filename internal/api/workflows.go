package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/altinukshini/gha-palette/internal/model"
)

func (c *Client) ListWorkflows(perPage, page int) (*model.WorkflowsResponse, error) {
	v := url.Values{}
	if perPage > 0 {
		v.Set("per_page", strconv.Itoa(perPage))
	} else {
		v.Set("per_page", "100")
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}

	var resp model.WorkflowsResponse
	err := c.Get("actions/workflows?"+v.Encode(), &resp)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	return &resp, nil
}

func (c *Client) EnableWorkflow(workflowID int64) error {
	return c.Put(fmt.Sprintf("actions/workflows/%d/enable", workflowID), nil, nil)
}

func (c *Client) DisableWorkflow(workflowID int64) error {
	return c.Put(fmt.Sprintf("actions/workflows/%d/disable", workflowID), nil, nil)
}

type dispatchRequest struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs,omitempty"`
}

// DispatchWorkflow triggers a workflow_dispatch event for the workflow on ref.
func (c *Client) DispatchWorkflow(workflowID int64, ref string, inputs map[string]string) error {
	body := dispatchRequest{Ref: ref, Inputs: inputs}
	if err := c.Post(fmt.Sprintf("actions/workflows/%d/dispatches", workflowID), body, nil); err != nil {
		return fmt.Errorf("dispatch workflow %d: %w", workflowID, err)
	}
	return nil
}

type repository struct {
	DefaultBranch string `json:"default_branch"`
}

// DefaultBranch returns the repository's default branch.
func (c *Client) DefaultBranch() (string, error) {
	var repo repository
	if err := c.rest.Get(fmt.Sprintf("repos/%s/%s", c.owner, c.repo), &repo); err != nil {
		return "", fmt.Errorf("get repository: %w", err)
	}
	return repo.DefaultBranch, nil
}
