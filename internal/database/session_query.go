package database

import (
	"gorm.io/gorm"

	"visitcoord/internal/model"
)

type SessionQuery struct {
	Query[model.Session]
	id      uint
	status  model.Status
	purpose model.Purpose
	full    bool
}

func NewSessionQuery(db *gorm.DB) *SessionQuery {
	return &SessionQuery{
		Query: Query[model.Session]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "sessions.updated_at DESC",
		},
	}
}

func (q *SessionQuery) Order(s string) *SessionQuery {
	q.order = s
	return q
}

func (q *SessionQuery) Limit(n int) *SessionQuery {
	q.limit = n
	return q
}

func (q *SessionQuery) Offset(n int) *SessionQuery {
	q.offset = n
	return q
}

func (q *SessionQuery) Id(id uint) *SessionQuery {
	q.id = id
	return q
}

func (q *SessionQuery) Status(s model.Status) *SessionQuery {
	q.status = s
	return q
}

func (q *SessionQuery) Purpose(p model.Purpose) *SessionQuery {
	q.purpose = p
	return q
}

// Full preloads the facility, ordered slots and evaluator join rows.
func (q *SessionQuery) Full() *SessionQuery {
	q.full = true
	return q
}

func (q *SessionQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("sessions.id = ?", q.id)
	}

	if q.status != "" {
		tx = tx.Where("sessions.status = ?", q.status)
	}

	if q.purpose != "" {
		tx = tx.Where("sessions.purpose = ?", q.purpose)
	}

	if q.full {
		tx = tx.Joins("Facility").
			Preload("Slots", func(db *gorm.DB) *gorm.DB {
				return db.Order("candidate_slots.sort_order")
			}).
			Preload("Evaluators").
			Preload("Evaluators.Evaluator")
	}

	return tx
}

func (q *SessionQuery) Get() []*model.Session {
	return q.get(q.where().Model(&model.Session{}))
}

func (q *SessionQuery) One() *model.Session {
	return q.one(q.where().Model(&model.Session{}))
}

func (q *SessionQuery) Count() int64 {
	return q.count(q.where().Model(&model.Session{}))
}

func (q *SessionQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Session{}), updates)
}
