package database

import (
	"gorm.io/gorm"

	"visitcoord/internal/model"
)

type ClientResponseQuery struct {
	Query[model.ClientResponse]
	sessionID uint
}

func NewClientResponseQuery(db *gorm.DB) *ClientResponseQuery {
	return &ClientResponseQuery{
		Query: Query[model.ClientResponse]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "client_responses.id",
		},
	}
}

func (q *ClientResponseQuery) Session(id uint) *ClientResponseQuery {
	q.sessionID = id
	return q
}

func (q *ClientResponseQuery) where() *gorm.DB {
	tx := q.db

	if q.sessionID != 0 {
		tx = tx.Where("client_responses.session_id = ?", q.sessionID)
	}

	return tx
}

func (q *ClientResponseQuery) Get() []*model.ClientResponse {
	return q.get(q.where().Model(&model.ClientResponse{}))
}

func (q *ClientResponseQuery) One() *model.ClientResponse {
	return q.one(q.where().Model(&model.ClientResponse{}))
}

func (q *ClientResponseQuery) Count() int64 {
	return q.count(q.where().Model(&model.ClientResponse{}))
}
