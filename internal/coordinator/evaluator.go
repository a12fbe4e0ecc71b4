package coordinator

import (
	"errors"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"visitcoord/internal/database"
	"visitcoord/internal/model"
)

// EvaluatorCollector accepts evaluator submissions identified by invite
// token. A token is good for exactly one submission; later corrections
// go through AdminSetAnswers.
type EvaluatorCollector struct {
	dbm       *database.DatabaseManager
	lifecycle *Lifecycle
	logger    *slog.Logger
}

func NewEvaluatorCollector(dbm *database.DatabaseManager, lifecycle *Lifecycle) *EvaluatorCollector {
	return &EvaluatorCollector{
		dbm:       dbm,
		lifecycle: lifecycle,
		logger:    slog.With("logger", "evaluator_collector"),
	}
}

// Submit records one evaluator's answers. The answered_at claim is a
// single conditional write, so two concurrent submissions with the same
// token succeed exactly once combined.
func (c *EvaluatorCollector) Submit(token string, answers map[uint]string, note *string) (*EvaluatorSubmission, error) {
	se := c.dbm.SessionEvaluatorQuery().Token(token).One()
	if se == nil {
		return nil, ErrInvalidToken
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"answered_at": now,
		"updated_at":  now,
	}

	if note != nil {
		updates["note"] = *note
	}

	err := c.dbm.SessionEvaluatorQuery().Id(se.ID).Unanswered().Update(updates)

	if errors.Is(err, database.ErrNoRows) {
		return nil, ErrAlreadySubmitted
	}

	if err != nil {
		return nil, storeErr(err)
	}

	rows, dropped := c.normalize(se, answers)

	if err := c.dbm.UpsertResponses(rows); err != nil {
		return nil, storeErr(err)
	}

	res := &EvaluatorSubmission{
		SessionID:          se.SessionID,
		EvaluatorID:        se.EvaluatorID,
		SessionEvaluatorID: se.ID,
		AnsweredAt:         now,
		Recorded:           len(rows),
		Dropped:            dropped,
	}

	res.Transition = c.advanceIfComplete(se.SessionID)

	return res, nil
}

// normalize maps raw input to canonical choices and drops entries for
// unknown symbols or slots outside this evaluator's session.
func (c *EvaluatorCollector) normalize(se *model.SessionEvaluator, answers map[uint]string) ([]*model.EvaluatorResponse, int) {
	slots := c.dbm.SlotQuery().Session(se.SessionID).Get()

	valid := lo.SliceToMap(slots, func(s *model.CandidateSlot) (uint, struct{}) {
		return s.ID, struct{}{}
	})

	rows := make([]*model.EvaluatorResponse, 0, len(answers))
	dropped := 0

	for slotID, raw := range answers {
		choice, ok := model.ParseChoice(raw)

		if _, known := valid[slotID]; !known || !ok {
			dropped++
			continue
		}

		rows = append(rows, &model.EvaluatorResponse{
			SessionEvaluatorID: se.ID,
			CandidateSlotID:    slotID,
			Choice:             choice,
		})
	}

	if dropped > 0 {
		c.logger.Warn("dropped unrecognized answers",
			slog.Any("session", se.SessionID),
			slog.Int("dropped", dropped))
	}

	return rows, dropped
}

// advanceIfComplete recomputes the answered count and bumps the session
// to WaitingForClient once the whole panel has responded. The check is
// a pure read aggregate, so a missed trigger only delays the bump and
// any later submission re-runs it.
func (c *EvaluatorCollector) advanceIfComplete(sessionID uint) Transition {
	total := c.dbm.SessionEvaluatorQuery().Session(sessionID).Count()
	answered := c.dbm.SessionEvaluatorQuery().Session(sessionID).Answered().Count()

	if total == 0 || answered < total {
		return Transition{}
	}

	err := c.lifecycle.Advance(sessionID, model.StatusWaitingForClient)

	if err != nil {
		c.logger.Warn("status advance failed",
			slog.Any("session", sessionID),
			slog.Any("error", err))
	}

	return Transition{Attempted: true, Advanced: err == nil, Err: err}
}

// AdminSetAnswers corrects one evaluator's recorded answers. It bypasses
// the at-most-once gate, never touches answered_at and never triggers a
// lifecycle transition. A nil or unrecognized value deletes the slot's
// answer, a recognized one upserts it.
func (c *EvaluatorCollector) AdminSetAnswers(sessionID, evaluatorID uint, note *string, answers map[uint]*string) (*AdminEdit, error) {
	se := c.dbm.SessionEvaluatorQuery().Session(sessionID).Evaluator(evaluatorID).One()
	if se == nil {
		return nil, ErrNotFound
	}

	slots := c.dbm.SlotQuery().Session(sessionID).Get()

	valid := lo.SliceToMap(slots, func(s *model.CandidateSlot) (uint, struct{}) {
		return s.ID, struct{}{}
	})

	upserts := make([]*model.EvaluatorResponse, 0, len(answers))
	deletes := make([]uint, 0)

	for slotID, raw := range answers {
		if _, known := valid[slotID]; !known {
			continue
		}

		if raw == nil {
			deletes = append(deletes, slotID)
			continue
		}

		choice, ok := model.ParseChoice(*raw)
		if !ok {
			deletes = append(deletes, slotID)
			continue
		}

		upserts = append(upserts, &model.EvaluatorResponse{
			SessionEvaluatorID: se.ID,
			CandidateSlotID:    slotID,
			Choice:             choice,
		})
	}

	if note != nil {
		err := c.dbm.SessionEvaluatorQuery().Id(se.ID).Update(map[string]any{
			"note":       *note,
			"updated_at": time.Now().UTC(),
		})
		if err != nil {
			return nil, storeErr(err)
		}
	}

	if err := c.dbm.UpsertResponses(upserts); err != nil {
		return nil, storeErr(err)
	}

	if len(deletes) > 0 {
		err := c.dbm.ResponseQuery().SessionEvaluator(se.ID).Slots(deletes).Delete()
		if err != nil {
			return nil, storeErr(err)
		}
	}

	return &AdminEdit{
		SessionID:   sessionID,
		EvaluatorID: evaluatorID,
		Upserted:    len(upserts),
		Deleted:     len(deletes),
	}, nil
}
