package coordinator

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"visitcoord/internal/database"
	"visitcoord/internal/model"
)

func prepare(t *testing.T) *database.DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one in-memory database for all goroutines of a test
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())

	return dbm
}

type fixture struct {
	dbm        *database.DatabaseManager
	lifecycle  *Lifecycle
	evaluators *EvaluatorCollector
	client     *ClientCollector
	aggregator *Aggregator
	admin      *Admin

	session *model.Session
	panel   []*model.SessionEvaluator
	slots   []*model.CandidateSlot
}

// newFixture creates a session with one panel member per email and one
// slot per label, then moves it to WaitingForEvaluators.
func newFixture(t *testing.T, emails []string, labels []string) *fixture {
	t.Helper()

	dbm := prepare(t)
	lifecycle := NewLifecycle(dbm)

	f := &fixture{
		dbm:        dbm,
		lifecycle:  lifecycle,
		evaluators: NewEvaluatorCollector(dbm, lifecycle),
		client:     NewClientCollector(dbm, lifecycle, nil),
		aggregator: NewAggregator(dbm),
		admin:      NewAdmin(dbm),
	}

	in := &CreateSessionInput{
		Facility: FacilityInput{
			ExternalID:   "fac-1",
			Name:         "Green Hills",
			ContactName:  "Contact",
			ContactEmail: "contact@example.com",
		},
		Purpose:          model.PurposeSiteSurvey,
		ResponseDeadline: time.Now().AddDate(0, 0, 7),
		PresentationDate: time.Now().AddDate(0, 0, 14),
	}

	for _, e := range emails {
		in.Evaluators = append(in.Evaluators, EvaluatorInput{Name: e, Email: e})
	}

	for i, l := range labels {
		in.Slots = append(in.Slots, SlotInput{Date: time.Now().AddDate(0, 0, i+1), Label: l})
	}

	s, err := f.admin.CreateSession(in)
	require.NoError(t, err)
	require.NotZero(t, s.ID)

	require.NoError(t, lifecycle.Advance(s.ID, model.StatusWaitingForEvaluators))

	f.session = dbm.SessionQuery().Id(s.ID).One()
	f.panel = dbm.SessionEvaluatorQuery().Session(s.ID).Get()
	f.slots = dbm.SlotQuery().Session(s.ID).Get()

	require.Len(t, f.panel, len(emails))
	require.Len(t, f.slots, len(labels))

	return f
}

func (f *fixture) status(t *testing.T) model.Status {
	t.Helper()

	s := f.dbm.SessionQuery().Id(f.session.ID).One()
	require.NotNil(t, s)

	return s.Status
}
