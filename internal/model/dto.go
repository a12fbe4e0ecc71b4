package model

import "time"

type SessionDTO struct {
	ID                  uint         `json:"id"`
	Purpose             Purpose      `json:"purpose"`
	Status              Status       `json:"status"`
	ResponseDeadline    time.Time    `json:"responseDeadline"`
	PresentationDate    time.Time    `json:"presentationDate"`
	DocURL              string       `json:"docUrl,omitempty"`
	FacilityFormViewURL string       `json:"facilityFormViewUrl,omitempty"`
	FacilityFormEditURL string       `json:"facilityFormEditUrl,omitempty"`
	Facility            *FacilityDTO `json:"facility,omitempty"`
}

type FacilityDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	DocURL       string `json:"docUrl,omitempty"`
}

type SlotDTO struct {
	ID        uint      `json:"id"`
	Date      time.Time `json:"date"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sortOrder"`
}

type SessionEvaluatorDTO struct {
	EvaluatorID        uint       `json:"evaluatorId"`
	SessionEvaluatorID uint       `json:"sessionEvaluatorId"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	AnsweredAt         *time.Time `json:"answeredAt,omitempty"`
	Note               string     `json:"note,omitempty"`
	FormViewURL        string     `json:"formViewUrl,omitempty"`
	FormEditURL        string     `json:"formEditUrl,omitempty"`
}

func ToSessionDTO(s *Session) *SessionDTO {
	if s == nil {
		return nil
	}

	dto := &SessionDTO{
		ID:                  s.ID,
		Purpose:             s.Purpose,
		Status:              s.Status,
		ResponseDeadline:    s.ResponseDeadline,
		PresentationDate:    s.PresentationDate,
		DocURL:              s.DocURL,
		FacilityFormViewURL: s.FacilityFormViewURL,
		FacilityFormEditURL: s.FacilityFormEditURL,
	}

	if s.Facility != nil {
		dto.Facility = ToFacilityDTO(s.Facility)
	}

	return dto
}

func ToFacilityDTO(f *Facility) *FacilityDTO {
	if f == nil {
		return nil
	}

	return &FacilityDTO{
		ID:           f.ID,
		Name:         f.Name,
		ContactName:  f.ContactName,
		ContactEmail: f.ContactEmail,
		DocURL:       f.DocURL,
	}
}

func ToSlotDTO(s *CandidateSlot) *SlotDTO {
	if s == nil {
		return nil
	}

	return &SlotDTO{
		ID:        s.ID,
		Date:      s.Date,
		Label:     s.Label,
		SortOrder: s.SortOrder,
	}
}

func ToSessionEvaluatorDTO(se *SessionEvaluator) *SessionEvaluatorDTO {
	if se == nil {
		return nil
	}

	dto := &SessionEvaluatorDTO{
		EvaluatorID:        se.EvaluatorID,
		SessionEvaluatorID: se.ID,
		AnsweredAt:         se.AnsweredAt,
		Note:               se.Note,
		FormViewURL:        se.FormViewURL,
		FormEditURL:        se.FormEditURL,
	}

	if se.Evaluator != nil {
		dto.Name = se.Evaluator.Name
		dto.Email = se.Evaluator.Email
	}

	return dto
}
