package model

// Purpose is the reason for a facility visit.
type Purpose string

const (
	PurposeSiteSurvey  Purpose = "SITE_SURVEY"
	PurposeInterview   Purpose = "INTERVIEW"
	PurposeObservation Purpose = "OBSERVATION"
	PurposeFeedback    Purpose = "FEEDBACK"
	PurposeOther       Purpose = "OTHER"
)

var purposes = map[Purpose]struct{}{
	PurposeSiteSurvey:  {},
	PurposeInterview:   {},
	PurposeObservation: {},
	PurposeFeedback:    {},
	PurposeOther:       {},
}

func (p Purpose) Valid() bool {
	_, ok := purposes[p]
	return ok
}

func AllPurposes() []Purpose {
	return []Purpose{PurposeSiteSurvey, PurposeInterview, PurposeObservation, PurposeFeedback, PurposeOther}
}
