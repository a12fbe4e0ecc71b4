package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitcoord/internal/model"
)

func TestAnswerMatrix(t *testing.T) {
	f := newFixture(t, []string{"a@example.com", "b@example.com"}, []string{"am", "pm"})

	s1, s2 := f.slots[0].ID, f.slots[1].ID

	_, err := f.evaluators.Submit(f.panel[0].InviteToken, map[uint]string{s1: "O", s2: "M"}, nil)
	require.NoError(t, err)

	_, err = f.evaluators.Submit(f.panel[1].InviteToken, map[uint]string{s1: "O"}, nil)
	require.NoError(t, err)

	matrix, err := f.aggregator.AnswerMatrix(f.session.ID)
	require.NoError(t, err)

	a, b := f.panel[0].EvaluatorID, f.panel[1].EvaluatorID

	assert.Equal(t, model.ChoiceOK, matrix[a][s1])
	assert.Equal(t, model.ChoiceMaybe, matrix[a][s2])
	assert.Equal(t, model.ChoiceOK, matrix[b][s1])

	// no stored null: b never answered s2, so the cell is absent
	_, present := matrix[b][s2]
	assert.False(t, present)
}

func TestAnswerMatrix_UnknownSession(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.aggregator.AnswerMatrix(9999)
	require.ErrorIs(t, err, ErrNotFound)

	matrix, err := f.aggregator.AnswerMatrix(f.session.ID)
	require.NoError(t, err)
	assert.Empty(t, matrix)
}

func TestEveryoneOK(t *testing.T) {
	f := newFixture(t, []string{"a@example.com", "b@example.com"}, []string{"am", "pm"})

	s1, s2 := f.slots[0].ID, f.slots[1].ID

	_, err := f.evaluators.Submit(f.panel[0].InviteToken, map[uint]string{s1: "O", s2: "O"}, nil)
	require.NoError(t, err)

	_, err = f.evaluators.Submit(f.panel[1].InviteToken, map[uint]string{s1: "O", s2: "X"}, nil)
	require.NoError(t, err)

	ok, err := f.aggregator.EveryoneOK(f.session.ID, s1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.aggregator.EveryoneOK(f.session.ID, s2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEveryoneOK_ZeroEvaluatorsIsFalse(t *testing.T) {
	f := newFixture(t, nil, []string{"am"})

	ok, err := f.aggregator.EveryoneOK(f.session.ID, f.slots[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEveryoneOK_ForeignSlot(t *testing.T) {
	f := newFixture(t, []string{"a@example.com"}, []string{"am"})

	_, err := f.aggregator.EveryoneOK(f.session.ID, 9999)
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestEveryoneOK_MissingAnswerBreaksUnanimity(t *testing.T) {
	f := newFixture(t, []string{"a@example.com", "b@example.com"}, []string{"am"})

	s1 := f.slots[0].ID

	_, err := f.evaluators.Submit(f.panel[0].InviteToken, map[uint]string{s1: "O"}, nil)
	require.NoError(t, err)

	// second evaluator submitted without an opinion on s1
	_, err = f.evaluators.Submit(f.panel[1].InviteToken, nil, nil)
	require.NoError(t, err)

	ok, err := f.aggregator.EveryoneOK(f.session.ID, s1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	f := newFixture(t, []string{"a@example.com"}, []string{"am", "pm"})

	_, err := f.evaluators.Submit(f.panel[0].InviteToken, map[uint]string{f.slots[0].ID: "O"}, nil)
	require.NoError(t, err)

	sum, err := f.aggregator.Summary(f.session.ID)
	require.NoError(t, err)

	require.NotNil(t, sum.Session)
	assert.Equal(t, f.session.ID, sum.Session.ID)
	require.NotNil(t, sum.Session.Facility)
	assert.Equal(t, "Green Hills", sum.Session.Facility.Name)

	require.Len(t, sum.Evaluators, 1)
	assert.Equal(t, "a@example.com", sum.Evaluators[0].Email)
	assert.NotNil(t, sum.Evaluators[0].AnsweredAt)

	require.Len(t, sum.Slots, 2)
	assert.Equal(t, "am", sum.Slots[0].Label)

	assert.Equal(t, model.ChoiceOK, sum.Answers[f.panel[0].EvaluatorID][f.slots[0].ID])
}

func TestSummary_UnknownSession(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.aggregator.Summary(9999)
	require.ErrorIs(t, err, ErrNotFound)
}
