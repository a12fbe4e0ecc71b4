package coordinator

import (
	"log/slog"
	"time"

	"github.com/samber/lo"

	"visitcoord/internal/database"
	"visitcoord/internal/model"
)

// ClientCollector accepts the facility side's final slot selection.
// The unique index on client_responses.session_id is the at-most-once
// guard: a duplicate insert fails at the store, not at a prior read.
type ClientCollector struct {
	dbm       *database.DatabaseManager
	lifecycle *Lifecycle
	notifier  Notifier
	logger    *slog.Logger
}

func NewClientCollector(dbm *database.DatabaseManager, lifecycle *Lifecycle, notifier Notifier) *ClientCollector {
	if notifier == nil {
		notifier = NewLogNotifier()
	}

	return &ClientCollector{
		dbm:       dbm,
		lifecycle: lifecycle,
		notifier:  notifier,
		logger:    slog.With("logger", "client_collector"),
	}
}

func (c *ClientCollector) Submit(sessionID uint, selectedSlotID *uint, note string) (*ClientSubmission, error) {
	s := c.dbm.SessionQuery().Id(sessionID).One()
	if s == nil {
		return nil, ErrNotFound
	}

	var slot *model.CandidateSlot

	if selectedSlotID != nil {
		slot = c.dbm.SlotQuery().Id(*selectedSlotID).Session(sessionID).One()
		if slot == nil {
			return nil, ErrInvalidSlot
		}
	}

	now := time.Now().UTC()

	cr := &model.ClientResponse{
		SessionID:               sessionID,
		SelectedCandidateSlotID: selectedSlotID,
		Note:                    note,
		AnsweredAt:              now,
	}

	if err := c.dbm.Create(cr); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrAlreadySubmitted
		}

		return nil, storeErr(err)
	}

	res := &ClientSubmission{
		SessionID:  sessionID,
		ResponseID: cr.ID,
		AnsweredAt: now,
	}

	err := c.lifecycle.Advance(sessionID, model.StatusConfirmed)

	if err != nil {
		c.logger.Warn("status advance failed",
			slog.Any("session", sessionID),
			slog.Any("error", err))
	}

	res.Transition = Transition{Attempted: true, Advanced: err == nil, Err: err}

	res.Payload = c.buildPayload(sessionID, slot, note, now)

	c.notifier.ClientResponded(res.Payload)

	return res, nil
}

// buildPayload denormalizes the confirmation context so a downstream
// notifier never has to touch the store.
func (c *ClientCollector) buildPayload(sessionID uint, slot *model.CandidateSlot, note string, answeredAt time.Time) *ConfirmationPayload {
	s := c.dbm.SessionQuery().Id(sessionID).Full().One()
	if s == nil {
		return nil
	}

	payload := &ConfirmationPayload{
		Session:    model.ToSessionDTO(s),
		Note:       note,
		AnsweredAt: answeredAt,
		Evaluators: lo.Map(s.Evaluators, func(se *model.SessionEvaluator, _ int) *model.SessionEvaluatorDTO {
			return model.ToSessionEvaluatorDTO(se)
		}),
	}

	if slot != nil {
		payload.SelectedSlot = model.ToSlotDTO(slot)
	}

	return payload
}
