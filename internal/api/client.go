package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

type Client struct {
	rest  *ghAPI.RESTClient
	owner string
	repo  string
}

// NewClient builds a client from the gh CLI's stored credentials.
func NewClient(owner, repo string) (*Client, error) {
	rest, err := ghAPI.DefaultRESTClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client (is gh authenticated?): %w", err)
	}
	return &Client{rest: rest, owner: owner, repo: repo}, nil
}

// NewClientWithOptions builds a client with explicit go-gh options, e.g. a
// token and a custom transport.
func NewClientWithOptions(owner, repo string, opts ghAPI.ClientOptions) (*Client, error) {
	rest, err := ghAPI.NewRESTClient(opts)
	if err != nil {
		return nil, fmt.Errorf("create GitHub client: %w", err)
	}
	return &Client{rest: rest, owner: owner, repo: repo}, nil
}

func (c *Client) repoPath(path string) string {
	return fmt.Sprintf("repos/%s/%s/%s", c.owner, c.repo, path)
}

func (c *Client) Get(path string, result interface{}) error {
	return c.rest.Get(c.repoPath(path), result)
}

func (c *Client) Post(path string, body interface{}, result interface{}) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.rest.Post(c.repoPath(path), reader, result)
}

func (c *Client) Put(path string, body interface{}, result interface{}) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.rest.Put(c.repoPath(path), reader, result)
}

func jsonBody(body interface{}) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(data), nil
}
