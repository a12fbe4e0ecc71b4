package database

import (
	"gorm.io/gorm"

	"visitcoord/internal/model"
)

type SessionEvaluatorQuery struct {
	Query[model.SessionEvaluator]
	id          uint
	sessionID   uint
	evaluatorID uint
	token       string
	answered    bool
	unanswered  bool
	full        bool
}

func NewSessionEvaluatorQuery(db *gorm.DB) *SessionEvaluatorQuery {
	return &SessionEvaluatorQuery{
		Query: Query[model.SessionEvaluator]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "session_evaluators.id",
		},
	}
}

func (q *SessionEvaluatorQuery) Id(id uint) *SessionEvaluatorQuery {
	q.id = id
	return q
}

func (q *SessionEvaluatorQuery) Session(id uint) *SessionEvaluatorQuery {
	q.sessionID = id
	return q
}

func (q *SessionEvaluatorQuery) Evaluator(id uint) *SessionEvaluatorQuery {
	q.evaluatorID = id
	return q
}

func (q *SessionEvaluatorQuery) Token(token string) *SessionEvaluatorQuery {
	q.token = token
	return q
}

// Answered filters to rows that have a non-null answered_at.
func (q *SessionEvaluatorQuery) Answered() *SessionEvaluatorQuery {
	q.answered = true
	return q
}

// Unanswered filters to rows with answered_at still null. Combined with
// Update this gives a single conditional write, which is what the
// at-most-once submission gate relies on.
func (q *SessionEvaluatorQuery) Unanswered() *SessionEvaluatorQuery {
	q.unanswered = true
	return q
}

func (q *SessionEvaluatorQuery) Full() *SessionEvaluatorQuery {
	q.full = true
	return q
}

func (q *SessionEvaluatorQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("session_evaluators.id = ?", q.id)
	}

	if q.sessionID != 0 {
		tx = tx.Where("session_evaluators.session_id = ?", q.sessionID)
	}

	if q.evaluatorID != 0 {
		tx = tx.Where("session_evaluators.evaluator_id = ?", q.evaluatorID)
	}

	if q.token != "" {
		tx = tx.Where("session_evaluators.invite_token = ?", q.token)
	}

	if q.answered {
		tx = tx.Where("session_evaluators.answered_at IS NOT NULL")
	}

	if q.unanswered {
		tx = tx.Where("session_evaluators.answered_at IS NULL")
	}

	if q.full {
		tx = tx.Joins("Evaluator")
	}

	return tx
}

func (q *SessionEvaluatorQuery) Get() []*model.SessionEvaluator {
	return q.get(q.where().Model(&model.SessionEvaluator{}))
}

func (q *SessionEvaluatorQuery) One() *model.SessionEvaluator {
	return q.one(q.where().Model(&model.SessionEvaluator{}))
}

func (q *SessionEvaluatorQuery) Count() int64 {
	return q.count(q.where().Model(&model.SessionEvaluator{}))
}

func (q *SessionEvaluatorQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.SessionEvaluator{}), updates)
}
