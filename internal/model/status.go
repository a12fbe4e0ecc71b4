package model

// Status is the session lifecycle state. It only moves forward.
type Status string

const (
	StatusDrafting             Status = "DRAFTING"
	StatusWaitingForEvaluators Status = "WAITING_FOR_EVALUATORS"
	StatusWaitingForClient     Status = "WAITING_FOR_CLIENT"
	StatusConfirmed            Status = "CONFIRMED"
)

var statusOrder = map[Status]int{
	StatusDrafting:             0,
	StatusWaitingForEvaluators: 1,
	StatusWaitingForClient:     2,
	StatusConfirmed:            3,
}

func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Rank returns the position of s in the lifecycle, -1 for unknown values.
func (s Status) Rank() int {
	if r, ok := statusOrder[s]; ok {
		return r
	}

	return -1
}

// CanAdvance reports whether moving from s to next is a forward step
// of the lifecycle. Re-applying the current status is allowed (no-op).
func (s Status) CanAdvance(next Status) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}

	return next.Rank() >= s.Rank()
}

func AllStatuses() []Status {
	return []Status{StatusDrafting, StatusWaitingForEvaluators, StatusWaitingForClient, StatusConfirmed}
}
