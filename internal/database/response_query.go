package database

import (
	"gorm.io/gorm"

	"visitcoord/internal/model"
)

type ResponseQuery struct {
	Query[model.EvaluatorResponse]
	sessionEvaluatorID  uint
	sessionEvaluatorIDs []uint
	slotID              uint
	slotIDs             []uint
	choice              model.Choice
}

func NewResponseQuery(db *gorm.DB) *ResponseQuery {
	return &ResponseQuery{
		Query: Query[model.EvaluatorResponse]{
			db:     db,
			limit:  1000,
			offset: 0,
			order:  "evaluator_responses.id",
		},
	}
}

func (q *ResponseQuery) SessionEvaluator(id uint) *ResponseQuery {
	q.sessionEvaluatorID = id
	return q
}

func (q *ResponseQuery) SessionEvaluators(ids []uint) *ResponseQuery {
	q.sessionEvaluatorIDs = ids
	return q
}

func (q *ResponseQuery) Slot(id uint) *ResponseQuery {
	q.slotID = id
	return q
}

func (q *ResponseQuery) Slots(ids []uint) *ResponseQuery {
	q.slotIDs = ids
	return q
}

func (q *ResponseQuery) Choice(c model.Choice) *ResponseQuery {
	q.choice = c
	return q
}

func (q *ResponseQuery) where() *gorm.DB {
	tx := q.db

	if q.sessionEvaluatorID != 0 {
		tx = tx.Where("evaluator_responses.session_evaluator_id = ?", q.sessionEvaluatorID)
	}

	if len(q.sessionEvaluatorIDs) > 0 {
		tx = tx.Where("evaluator_responses.session_evaluator_id IN ?", q.sessionEvaluatorIDs)
	}

	if q.slotID != 0 {
		tx = tx.Where("evaluator_responses.candidate_slot_id = ?", q.slotID)
	}

	if len(q.slotIDs) > 0 {
		tx = tx.Where("evaluator_responses.candidate_slot_id IN ?", q.slotIDs)
	}

	if q.choice != "" {
		tx = tx.Where("evaluator_responses.choice = ?", q.choice)
	}

	return tx
}

func (q *ResponseQuery) Get() []*model.EvaluatorResponse {
	return q.get(q.where().Model(&model.EvaluatorResponse{}))
}

func (q *ResponseQuery) One() *model.EvaluatorResponse {
	return q.one(q.where().Model(&model.EvaluatorResponse{}))
}

func (q *ResponseQuery) Count() int64 {
	return q.count(q.where().Model(&model.EvaluatorResponse{}))
}

func (q *ResponseQuery) Delete() error {
	return q.where().Delete(&model.EvaluatorResponse{}).Error
}
