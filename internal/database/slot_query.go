package database

import (
	"gorm.io/gorm"

	"visitcoord/internal/model"
)

type SlotQuery struct {
	Query[model.CandidateSlot]
	id        uint
	sessionID uint
}

func NewSlotQuery(db *gorm.DB) *SlotQuery {
	return &SlotQuery{
		Query: Query[model.CandidateSlot]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "candidate_slots.sort_order",
		},
	}
}

func (q *SlotQuery) Id(id uint) *SlotQuery {
	q.id = id
	return q
}

func (q *SlotQuery) Session(id uint) *SlotQuery {
	q.sessionID = id
	return q
}

func (q *SlotQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("candidate_slots.id = ?", q.id)
	}

	if q.sessionID != 0 {
		tx = tx.Where("candidate_slots.session_id = ?", q.sessionID)
	}

	return tx
}

func (q *SlotQuery) Get() []*model.CandidateSlot {
	return q.get(q.where().Model(&model.CandidateSlot{}))
}

func (q *SlotQuery) One() *model.CandidateSlot {
	return q.one(q.where().Model(&model.CandidateSlot{}))
}

func (q *SlotQuery) Count() int64 {
	return q.count(q.where().Model(&model.CandidateSlot{}))
}
