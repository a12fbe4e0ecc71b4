package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitcoord/internal/model"
)

// Full happy path: two evaluators rate two slots, the panel completes,
// the client picks the unanimous slot, and a repeat client submission
// bounces.
func TestFullCoordinationRound(t *testing.T) {
	f := newFixture(t, []string{"a@example.com", "b@example.com"}, []string{"am", "pm"})

	s1, s2 := f.slots[0].ID, f.slots[1].ID

	_, err := f.evaluators.Submit(f.panel[0].InviteToken, map[uint]string{s1: "O", s2: "M"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaitingForEvaluators, f.status(t))

	res, err := f.evaluators.Submit(f.panel[1].InviteToken, map[uint]string{s1: "O", s2: "X"}, nil)
	require.NoError(t, err)
	assert.True(t, res.Transition.Advanced)
	assert.Equal(t, model.StatusWaitingForClient, f.status(t))

	ok, err := f.aggregator.EveryoneOK(f.session.ID, s1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.aggregator.EveryoneOK(f.session.ID, s2)
	require.NoError(t, err)
	assert.False(t, ok)

	cres, err := f.client.Submit(f.session.ID, &s1, "see you then")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, f.status(t))
	require.NotNil(t, cres.Payload.SelectedSlot)
	assert.Equal(t, s1, cres.Payload.SelectedSlot.ID)

	_, err = f.client.Submit(f.session.ID, &s1, "")
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}
