package coordinator

import (
	"time"

	"visitcoord/internal/model"
)

// Transition reports the best-effort status bump that follows a
// successful submission, separately from the write itself.
type Transition struct {
	Attempted bool
	Advanced  bool
	Err       error
}

type EvaluatorSubmission struct {
	SessionID          uint
	EvaluatorID        uint
	SessionEvaluatorID uint
	AnsweredAt         time.Time
	Recorded           int
	Dropped            int
	Transition         Transition
}

type ClientSubmission struct {
	SessionID  uint
	ResponseID uint
	AnsweredAt time.Time
	Transition Transition
	Payload    *ConfirmationPayload
}

type AdminEdit struct {
	SessionID   uint
	EvaluatorID uint
	Upserted    int
	Deleted     int
}

// ConfirmationPayload carries enough denormalized context for a
// downstream notifier to run without re-querying the store.
type ConfirmationPayload struct {
	Session      *model.SessionDTO            `json:"session"`
	Evaluators   []*model.SessionEvaluatorDTO `json:"evaluators"`
	SelectedSlot *model.SlotDTO               `json:"selectedSlot,omitempty"`
	Note         string                       `json:"note,omitempty"`
	AnsweredAt   time.Time                    `json:"answeredAt"`
}
