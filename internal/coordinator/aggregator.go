package coordinator

import (
	"log/slog"

	"github.com/samber/lo"

	"visitcoord/internal/database"
	"visitcoord/internal/model"
)

// Aggregator is a read-only view over the answer matrix.
type Aggregator struct {
	dbm    *database.DatabaseManager
	logger *slog.Logger
}

func NewAggregator(dbm *database.DatabaseManager) *Aggregator {
	return &Aggregator{
		dbm:    dbm,
		logger: slog.With("logger", "aggregator"),
	}
}

// AnswerMatrix returns choice by evaluator by slot. Evaluators with no
// recorded answer for a slot are simply absent from the inner map.
func (a *Aggregator) AnswerMatrix(sessionID uint) (map[uint]map[uint]model.Choice, error) {
	if a.dbm.SessionQuery().Id(sessionID).One() == nil {
		return nil, ErrNotFound
	}

	ses := a.dbm.SessionEvaluatorQuery().Session(sessionID).Get()

	matrix := make(map[uint]map[uint]model.Choice, len(ses))

	if len(ses) == 0 {
		return matrix, nil
	}

	byID := lo.SliceToMap(ses, func(se *model.SessionEvaluator) (uint, uint) {
		return se.ID, se.EvaluatorID
	})

	rows := a.dbm.ResponseQuery().SessionEvaluators(lo.Keys(byID)).Get()

	for _, r := range rows {
		eid, ok := byID[r.SessionEvaluatorID]
		if !ok {
			continue
		}

		if matrix[eid] == nil {
			matrix[eid] = make(map[uint]model.Choice)
		}

		matrix[eid][r.CandidateSlotID] = r.Choice
	}

	return matrix, nil
}

// EveryoneOK reports whether every evaluator on the panel recorded OK
// for the slot. An empty panel is never unanimous.
func (a *Aggregator) EveryoneOK(sessionID, slotID uint) (bool, error) {
	if a.dbm.SlotQuery().Id(slotID).Session(sessionID).One() == nil {
		return false, ErrInvalidSlot
	}

	ses := a.dbm.SessionEvaluatorQuery().Session(sessionID).Get()
	if len(ses) == 0 {
		return false, nil
	}

	ids := lo.Map(ses, func(se *model.SessionEvaluator, _ int) uint {
		return se.ID
	})

	ok := a.dbm.ResponseQuery().
		SessionEvaluators(ids).
		Slot(slotID).
		Choice(model.ChoiceOK).
		Count()

	return ok == int64(len(ses)), nil
}

// Summary is the read model for the session status page: header,
// facility, panel members, ordered slots and the full answer matrix.
type Summary struct {
	Session    *model.SessionDTO              `json:"session"`
	Evaluators []*model.SessionEvaluatorDTO   `json:"evaluators"`
	Slots      []*model.SlotDTO               `json:"slots"`
	Answers    map[uint]map[uint]model.Choice `json:"answers"`
}

func (a *Aggregator) Summary(sessionID uint) (*Summary, error) {
	s := a.dbm.SessionQuery().Id(sessionID).Full().One()
	if s == nil {
		return nil, ErrNotFound
	}

	answers, err := a.AnswerMatrix(sessionID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Session: model.ToSessionDTO(s),
		Evaluators: lo.Map(s.Evaluators, func(se *model.SessionEvaluator, _ int) *model.SessionEvaluatorDTO {
			return model.ToSessionEvaluatorDTO(se)
		}),
		Slots: lo.Map(s.Slots, func(sl *model.CandidateSlot, _ int) *model.SlotDTO {
			return model.ToSlotDTO(sl)
		}),
		Answers: answers,
	}, nil
}
