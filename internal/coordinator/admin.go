package coordinator

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"visitcoord/internal/database"
	"visitcoord/internal/model"
)

// Admin creates sessions and edits their header fields. Session status
// is out of its reach: header edits never touch the lifecycle.
type Admin struct {
	dbm    *database.DatabaseManager
	logger *slog.Logger
}

func NewAdmin(dbm *database.DatabaseManager) *Admin {
	return &Admin{
		dbm:    dbm,
		logger: slog.With("logger", "admin"),
	}
}

type CreateSessionInput struct {
	Facility         FacilityInput
	Purpose          model.Purpose
	ResponseDeadline time.Time
	PresentationDate time.Time
	DocURL           string
	Evaluators       []EvaluatorInput
	Slots            []SlotInput
}

type FacilityInput struct {
	ExternalID   string
	Name         string
	ContactName  string
	ContactEmail string
	DocURL       string
}

type EvaluatorInput struct {
	Name  string
	Email string
}

type SlotInput struct {
	Date  time.Time
	Label string
}

// CreateSession writes the facility, evaluators, session, slots and
// panel join rows in one transaction. Every join row gets a fresh
// invite token. The session starts in Drafting.
func (a *Admin) CreateSession(in *CreateSessionInput) (*model.Session, error) {
	if in == nil || !in.Purpose.Valid() || in.Facility.ExternalID == "" {
		return nil, ErrValidationFailed
	}

	var session *model.Session

	err := a.dbm.Transaction(func(tx *gorm.DB) error {
		txm := a.dbm.WithTx(tx)

		facility := &model.Facility{
			ExternalID:   in.Facility.ExternalID,
			Name:         in.Facility.Name,
			ContactName:  in.Facility.ContactName,
			ContactEmail: in.Facility.ContactEmail,
			DocURL:       in.Facility.DocURL,
		}

		if err := txm.UpsertFacility(facility); err != nil {
			return err
		}

		evaluatorIDs := make([]uint, 0, len(in.Evaluators))

		for _, e := range in.Evaluators {
			email := strings.TrimSpace(e.Email)
			if email == "" {
				continue
			}

			ev := &model.Evaluator{Name: e.Name, Email: email}

			if err := txm.UpsertEvaluator(ev); err != nil {
				return err
			}

			evaluatorIDs = append(evaluatorIDs, ev.ID)
		}

		session = &model.Session{
			FacilityID:       facility.ID,
			Purpose:          in.Purpose,
			Status:           model.StatusDrafting,
			ResponseDeadline: in.ResponseDeadline,
			PresentationDate: in.PresentationDate,
			DocURL:           in.DocURL,
		}

		if err := tx.Create(session).Error; err != nil {
			return err
		}

		for i, s := range in.Slots {
			label := strings.TrimSpace(s.Label)
			if s.Date.IsZero() || label == "" {
				continue
			}

			slot := &model.CandidateSlot{
				SessionID: session.ID,
				Date:      s.Date,
				Label:     label,
				SortOrder: i,
			}

			if err := tx.Create(slot).Error; err != nil {
				return err
			}
		}

		for _, eid := range evaluatorIDs {
			se := &model.SessionEvaluator{
				SessionID:   session.ID,
				EvaluatorID: eid,
				InviteToken: uuid.NewString(),
			}

			if err := tx.Create(se).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		a.logger.Error("session create failed", slog.Any("error", err))
		return nil, storeErr(err)
	}

	return session, nil
}

type UpdateSessionInput struct {
	Purpose          *model.Purpose
	ResponseDeadline *time.Time
	PresentationDate *time.Time
	DocURL           *string
}

// UpdateSession edits header fields only. It never changes status.
func (a *Admin) UpdateSession(sessionID uint, in *UpdateSessionInput) error {
	if in == nil {
		return ErrValidationFailed
	}

	updates := make(map[string]any)

	if in.Purpose != nil {
		if !in.Purpose.Valid() {
			return ErrValidationFailed
		}

		updates["purpose"] = *in.Purpose
	}

	if in.ResponseDeadline != nil {
		updates["response_deadline"] = *in.ResponseDeadline
	}

	if in.PresentationDate != nil {
		updates["presentation_date"] = *in.PresentationDate
	}

	if in.DocURL != nil {
		updates["doc_url"] = *in.DocURL
	}

	if len(updates) == 0 {
		return nil
	}

	updates["updated_at"] = time.Now().UTC()

	err := a.dbm.SessionQuery().Id(sessionID).Update(updates)

	if errors.Is(err, database.ErrNoRows) {
		return ErrNotFound
	}

	if err != nil {
		return storeErr(err)
	}

	return nil
}
