package database

import (
	"gorm.io/gorm"

	"visitcoord/internal/model"
)

type EvaluatorQuery struct {
	Query[model.Evaluator]
	id     uint
	email  string
	emails []string
}

func NewEvaluatorQuery(db *gorm.DB) *EvaluatorQuery {
	return &EvaluatorQuery{
		Query: Query[model.Evaluator]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "evaluators.id",
		},
	}
}

func (q *EvaluatorQuery) Id(id uint) *EvaluatorQuery {
	q.id = id
	return q
}

func (q *EvaluatorQuery) Email(email string) *EvaluatorQuery {
	q.email = email
	return q
}

func (q *EvaluatorQuery) Emails(emails []string) *EvaluatorQuery {
	q.emails = emails
	return q
}

func (q *EvaluatorQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("evaluators.id = ?", q.id)
	}

	if q.email != "" {
		tx = tx.Where("evaluators.email = ?", q.email)
	}

	if len(q.emails) > 0 {
		tx = tx.Where("evaluators.email IN ?", q.emails)
	}

	return tx
}

func (q *EvaluatorQuery) Get() []*model.Evaluator {
	return q.get(q.where().Model(&model.Evaluator{}))
}

func (q *EvaluatorQuery) One() *model.Evaluator {
	return q.one(q.where().Model(&model.Evaluator{}))
}

func (q *EvaluatorQuery) Count() int64 {
	return q.count(q.where().Model(&model.Evaluator{}))
}
