package model

type ActionKind string

const (
	KindBuiltin          ActionKind = "builtin"
	KindShell            ActionKind = "shell"
	KindWorkflowDispatch ActionKind = "workflow-dispatch"
	KindWorkflowEnable   ActionKind = "workflow-enable"
	KindWorkflowDisable  ActionKind = "workflow-disable"
	KindRunRerun         ActionKind = "run-rerun"
	KindRunRerunFailed   ActionKind = "run-rerun-failed"
	KindRunCancel        ActionKind = "run-cancel"
)

// Action is a single entry the palette can search for and run.
// Name is its identity: history, de-duplication and lookups all key on it.
type Action struct {
	Name      string     `json:"name"`
	Label     string     `json:"label"`
	Tooltip   string     `json:"tooltip,omitempty"`
	Group     string     `json:"group"`
	Accel     string     `json:"accel,omitempty"`
	Sensitive bool       `json:"sensitive"`
	Toggle    bool       `json:"toggle,omitempty"`
	Active    bool       `json:"active,omitempty"`
	Confirm   bool       `json:"confirm,omitempty"`
	Kind      ActionKind `json:"kind"`

	// Shell actions
	Command string `json:"command,omitempty"`
	Shell   bool   `json:"shell,omitempty"`

	// GitHub actions
	WorkflowID int64  `json:"workflow_id,omitempty"`
	RunID      int64  `json:"run_id,omitempty"`
	Ref        string `json:"ref,omitempty"`
}

// SearchItem returns the read-only view of the action that the matcher sees.
func (a Action) SearchItem() SearchItem {
	return SearchItem{
		ID:      a.Name,
		Label:   a.Label,
		Tooltip: a.Tooltip,
		Enabled: a.Sensitive,
	}
}

func (a Action) IsBuiltin() bool {
	return a.Kind == KindBuiltin
}

type ActionGroup struct {
	Name    string   `json:"name"`
	Actions []Action `json:"actions"`
}
