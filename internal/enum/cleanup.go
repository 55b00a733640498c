package enum

import "strings"

type Action string

const (
	ActionDelete Action = "delete"
	ActionTrash  Action = "trash"
)

func (t Action) String() string {
	return string(t)
}

// ParseAction normalizes a configured action value. Anything unknown or empty
// falls back to delete.
func ParseAction(value string) Action {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trash":
		return ActionTrash
	default:
		return ActionDelete
	}
}

type Outcome string

const (
	OutcomeDeleted Outcome = "deleted"
	OutcomeTrashed Outcome = "trashed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeErrored Outcome = "errored"
)

func (t Outcome) String() string {
	return string(t)
}

type Decision string

const (
	DecisionYes    Decision = "yes"
	DecisionNo     Decision = "no"
	DecisionCancel Decision = "cancel"
)

func (t Decision) String() string {
	return string(t)
}
