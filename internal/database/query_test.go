package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"visitcoord/internal/model"
)

func getTestDatabase(t *testing.T) *DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	mm := New(db)
	require.NoError(t, mm.Migrate())

	return mm
}

func TestSessionQuery_Filters(t *testing.T) {
	mm := getTestDatabase(t)

	f := &model.Facility{ExternalID: "ext1", Name: "facility"}
	require.NoError(t, mm.Create(f))

	require.NoError(t, mm.Create(&model.Session{FacilityID: f.ID, Purpose: model.PurposeInterview, Status: model.StatusDrafting}))
	require.NoError(t, mm.Create(&model.Session{FacilityID: f.ID, Purpose: model.PurposeInterview, Status: model.StatusWaitingForEvaluators}))
	require.NoError(t, mm.Create(&model.Session{FacilityID: f.ID, Purpose: model.PurposeFeedback, Status: model.StatusDrafting}))

	assert.EqualValues(t, 3, mm.SessionQuery().Count())
	assert.EqualValues(t, 2, mm.SessionQuery().Purpose(model.PurposeInterview).Count())
	assert.EqualValues(t, 2, mm.SessionQuery().Status(model.StatusDrafting).Count())
	assert.Len(t, mm.SessionQuery().Status(model.StatusWaitingForEvaluators).Get(), 1)
	assert.Nil(t, mm.SessionQuery().Id(999).One())
}

func TestSessionEvaluatorQuery_ConditionalUpdate(t *testing.T) {
	mm := getTestDatabase(t)

	f := &model.Facility{ExternalID: "ext1", Name: "facility"}
	require.NoError(t, mm.Create(f))

	s := &model.Session{FacilityID: f.ID, Status: model.StatusWaitingForEvaluators}
	require.NoError(t, mm.Create(s))

	ev := &model.Evaluator{Name: "A", Email: "a@example.com"}
	require.NoError(t, mm.Create(ev))

	se := &model.SessionEvaluator{SessionID: s.ID, EvaluatorID: ev.ID, InviteToken: "tok1"}
	require.NoError(t, mm.Create(se))

	now := time.Now().UTC()

	err := mm.SessionEvaluatorQuery().Id(se.ID).Unanswered().Update(map[string]any{"answered_at": now})
	require.NoError(t, err)

	// second conditional write matches nothing
	err = mm.SessionEvaluatorQuery().Id(se.ID).Unanswered().Update(map[string]any{"answered_at": now})
	require.ErrorIs(t, err, ErrNoRows)

	got := mm.SessionEvaluatorQuery().Token("tok1").One()
	require.NotNil(t, got)
	assert.NotNil(t, got.AnsweredAt)

	assert.EqualValues(t, 1, mm.SessionEvaluatorQuery().Session(s.ID).Answered().Count())
	assert.EqualValues(t, 0, mm.SessionEvaluatorQuery().Session(s.ID).Unanswered().Count())
}

func TestSessionEvaluatorQuery_UniquePair(t *testing.T) {
	mm := getTestDatabase(t)

	f := &model.Facility{ExternalID: "ext1", Name: "facility"}
	require.NoError(t, mm.Create(f))

	s := &model.Session{FacilityID: f.ID, Status: model.StatusDrafting}
	require.NoError(t, mm.Create(s))

	ev := &model.Evaluator{Name: "A", Email: "a@example.com"}
	require.NoError(t, mm.Create(ev))

	require.NoError(t, mm.Create(&model.SessionEvaluator{SessionID: s.ID, EvaluatorID: ev.ID, InviteToken: "a"}))

	err := mm.Create(&model.SessionEvaluator{SessionID: s.ID, EvaluatorID: ev.ID, InviteToken: "b"})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestUpsertResponses(t *testing.T) {
	mm := getTestDatabase(t)

	rows := []*model.EvaluatorResponse{
		{SessionEvaluatorID: 1, CandidateSlotID: 1, Choice: model.ChoiceOK},
		{SessionEvaluatorID: 1, CandidateSlotID: 2, Choice: model.ChoiceMaybe},
	}
	require.NoError(t, mm.UpsertResponses(rows))

	// overwrite slot 1, keep slot 2
	require.NoError(t, mm.UpsertResponses([]*model.EvaluatorResponse{
		{SessionEvaluatorID: 1, CandidateSlotID: 1, Choice: model.ChoiceReject},
	}))

	all := mm.ResponseQuery().SessionEvaluator(1).Get()
	require.Len(t, all, 2)

	got := mm.ResponseQuery().SessionEvaluator(1).Slot(1).One()
	require.NotNil(t, got)
	assert.Equal(t, model.ChoiceReject, got.Choice)

	assert.EqualValues(t, 1, mm.ResponseQuery().SessionEvaluator(1).Choice(model.ChoiceMaybe).Count())
}

func TestClientResponseUniquePerSession(t *testing.T) {
	mm := getTestDatabase(t)

	require.NoError(t, mm.Create(&model.ClientResponse{SessionID: 1, AnsweredAt: time.Now()}))

	err := mm.Create(&model.ClientResponse{SessionID: 1, AnsweredAt: time.Now()})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	require.NoError(t, mm.Create(&model.ClientResponse{SessionID: 2, AnsweredAt: time.Now()}))
	assert.EqualValues(t, 1, mm.ClientResponseQuery().Session(1).Count())
}

func TestQueryOne_NilOnStoreError(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mm := New(db)
	require.NoError(t, mm.Migrate())

	f := &model.Facility{ExternalID: "ext1", Name: "facility"}
	require.NoError(t, mm.Create(f))
	require.NoError(t, mm.Create(&model.Session{FacilityID: f.ID, Status: model.StatusDrafting}))

	require.NotNil(t, mm.SessionQuery().Id(1).One())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// an unreachable store must not produce a zero-value record
	assert.Nil(t, mm.SessionQuery().Id(1).One())
}

func TestUpsertEvaluatorByEmail(t *testing.T) {
	mm := getTestDatabase(t)

	first := &model.Evaluator{Name: "A", Email: "a@example.com"}
	require.NoError(t, mm.UpsertEvaluator(first))
	require.NotZero(t, first.ID)

	second := &model.Evaluator{Name: "A2", Email: "a@example.com"}
	require.NoError(t, mm.UpsertEvaluator(second))
	assert.Equal(t, first.ID, second.ID)

	assert.EqualValues(t, 1, mm.EvaluatorQuery().Count())

	got := mm.EvaluatorQuery().Email("a@example.com").One()
	require.NotNil(t, got)
	assert.Equal(t, "A2", got.Name)
}

func TestUpsertFacilityByExternalID(t *testing.T) {
	mm := getTestDatabase(t)

	first := &model.Facility{ExternalID: "ext1", Name: "facility"}
	require.NoError(t, mm.UpsertFacility(first))
	require.NotZero(t, first.ID)

	second := &model.Facility{ExternalID: "ext1", Name: "renamed", ContactEmail: "c@example.com"}
	require.NoError(t, mm.UpsertFacility(second))
	assert.Equal(t, first.ID, second.ID)

	other := &model.Facility{ExternalID: "ext2", Name: "other"}
	require.NoError(t, mm.UpsertFacility(other))
	assert.NotEqual(t, first.ID, other.ID)
}

func TestSessionQuery_Full(t *testing.T) {
	mm := getTestDatabase(t)

	f := &model.Facility{ExternalID: "ext1", Name: "facility"}
	require.NoError(t, mm.Create(f))

	s := &model.Session{FacilityID: f.ID, Status: model.StatusDrafting}
	require.NoError(t, mm.Create(s))

	require.NoError(t, mm.Create(&model.CandidateSlot{SessionID: s.ID, Label: "pm", SortOrder: 1}))
	require.NoError(t, mm.Create(&model.CandidateSlot{SessionID: s.ID, Label: "am", SortOrder: 0}))

	ev := &model.Evaluator{Name: "A", Email: "a@example.com"}
	require.NoError(t, mm.Create(ev))
	require.NoError(t, mm.Create(&model.SessionEvaluator{SessionID: s.ID, EvaluatorID: ev.ID, InviteToken: "tok"}))

	got := mm.SessionQuery().Id(s.ID).Full().One()
	require.NotNil(t, got)
	require.NotNil(t, got.Facility)
	assert.Equal(t, "facility", got.Facility.Name)

	require.Len(t, got.Slots, 2)
	assert.Equal(t, "am", got.Slots[0].Label)

	require.Len(t, got.Evaluators, 1)
	require.NotNil(t, got.Evaluators[0].Evaluator)
	assert.Equal(t, "a@example.com", got.Evaluators[0].Evaluator.Email)
}
