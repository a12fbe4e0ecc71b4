package model

import "time"

type Facility struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ExternalID   string `gorm:"uniqueIndex"`
	Name         string
	ContactName  string
	ContactEmail string
	DocURL       string
}

type Session struct {
	ID                  uint `gorm:"primaryKey"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	FacilityID          uint `gorm:"index"`
	Facility            *Facility
	Purpose             Purpose
	Status              Status `gorm:"index"`
	ResponseDeadline    time.Time
	PresentationDate    time.Time
	DocURL              string
	FacilityFormViewURL string
	FacilityFormEditURL string
	Slots               []*CandidateSlot
	Evaluators          []*SessionEvaluator
}

type CandidateSlot struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	SessionID uint `gorm:"index"`
	Date      time.Time
	Label     string
	SortOrder int
}

type Evaluator struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Email     string `gorm:"uniqueIndex"`
}

// SessionEvaluator is one evaluator's membership in one session.
// AnsweredAt is the at-most-once submission gate: set exactly once
// by the evaluator path, never by admin edits.
type SessionEvaluator struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SessionID   uint `gorm:"index;uniqueIndex:idx_session_evaluator"`
	EvaluatorID uint `gorm:"uniqueIndex:idx_session_evaluator"`
	Evaluator   *Evaluator
	InviteToken string `gorm:"uniqueIndex"`
	AnsweredAt  *time.Time
	Note        string
	FormViewURL string
	FormEditURL string
}

// EvaluatorResponse is one evaluator's choice for one slot. Absence of
// a row means no opinion. Keyed by (session_evaluator, slot) so upserts
// collapse duplicates.
type EvaluatorResponse struct {
	ID                 uint `gorm:"primaryKey"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	SessionEvaluatorID uint `gorm:"index;uniqueIndex:idx_se_slot"`
	CandidateSlotID    uint `gorm:"uniqueIndex:idx_se_slot"`
	Choice             Choice
}

// ClientResponse is the facility side's final pick. The unique index on
// SessionID enforces at most one response per session at the store level.
type ClientResponse struct {
	ID                      uint `gorm:"primaryKey"`
	CreatedAt               time.Time
	SessionID               uint `gorm:"uniqueIndex"`
	SelectedCandidateSlotID *uint
	Note                    string
	AnsweredAt              time.Time
}
