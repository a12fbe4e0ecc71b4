package database

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"visitcoord/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

// Transaction runs fn inside one store transaction.
func (mm *DatabaseManager) Transaction(fn func(tx *gorm.DB) error) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	return mm.db.Transaction(fn)
}

// WithTx binds the manager to tx, so upserts and query builders can
// run inside a caller's transaction.
func (mm *DatabaseManager) WithTx(tx *gorm.DB) *DatabaseManager {
	return &DatabaseManager{db: tx, logger: mm.logger}
}

func (mm *DatabaseManager) SessionQuery() *SessionQuery {
	return NewSessionQuery(mm.db)
}

func (mm *DatabaseManager) SlotQuery() *SlotQuery {
	return NewSlotQuery(mm.db)
}

func (mm *DatabaseManager) EvaluatorQuery() *EvaluatorQuery {
	return NewEvaluatorQuery(mm.db)
}

func (mm *DatabaseManager) SessionEvaluatorQuery() *SessionEvaluatorQuery {
	return NewSessionEvaluatorQuery(mm.db)
}

func (mm *DatabaseManager) ResponseQuery() *ResponseQuery {
	return NewResponseQuery(mm.db)
}

func (mm *DatabaseManager) ClientResponseQuery() *ClientResponseQuery {
	return NewClientResponseQuery(mm.db)
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	if err := mm.db.AutoMigrate(
		&model.Facility{},
		&model.Session{},
		&model.CandidateSlot{},
		&model.Evaluator{},
		&model.SessionEvaluator{},
		&model.EvaluatorResponse{},
		&model.ClientResponse{},
	); err != nil {
		return err
	}

	return nil
}

// UpsertResponses writes choice rows keyed by (session_evaluator_id,
// candidate_slot_id), so a repeated slot overwrites cleanly.
func (mm *DatabaseManager) UpsertResponses(rows []*model.EvaluatorResponse) error {
	if mm == nil || mm.db == nil || len(rows) == 0 {
		return nil
	}

	err := mm.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_evaluator_id"}, {Name: "candidate_slot_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"choice", "updated_at"}),
	}).Create(rows).Error

	if err != nil {
		mm.logger.Error("error upserting responses", slog.Any("error", err))
	}

	return err
}

// UpsertEvaluator inserts or updates an evaluator keyed by email.
// ev.ID is populated either way.
func (mm *DatabaseManager) UpsertEvaluator(ev *model.Evaluator) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(ev).Error
	if err != nil {
		return err
	}

	// id is not populated on the conflict path
	if ev.ID == 0 {
		return mm.db.Where("email = ?", ev.Email).Take(ev).Error
	}

	return nil
}

// UpsertFacility inserts or updates a facility keyed by its external
// page id. f.ID is populated either way.
func (mm *DatabaseManager) UpsertFacility(f *model.Facility) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "contact_name", "contact_email", "doc_url", "updated_at"}),
	}).Create(f).Error
	if err != nil {
		return err
	}

	if f.ID == 0 {
		return mm.db.Where("external_id = ?", f.ExternalID).Take(f).Error
	}

	return nil
}

// IsDuplicateKey reports whether err comes from a unique constraint
// violation. Both gorm's translated error and the raw sqlite/mysql
// messages are recognized.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
