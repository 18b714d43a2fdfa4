package services

import (
	"testing"

	"feasibility/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	base := testRuleSet()
	exact := testRuleSet()
	exact.Revision = "exact"
	exact.MatchMode = models.MatchExact

	t.Run("first set is the default", func(t *testing.T) {
		reg, err := NewRegistry("", base, exact)
		require.NoError(t, err)
		assert.Equal(t, "test", reg.DefaultRevision())
		assert.Equal(t, []string{"exact", "test"}, reg.Revisions())
	})

	t.Run("explicit default", func(t *testing.T) {
		reg, err := NewRegistry("exact", base, exact)
		require.NoError(t, err)

		ev, err := reg.Evaluator("")
		require.NoError(t, err)
		assert.Equal(t, "exact", ev.Revision())
	})

	t.Run("unknown default", func(t *testing.T) {
		_, err := NewRegistry("missing", base)
		assert.ErrorIs(t, err, ErrInvalidRuleSet)
	})

	t.Run("duplicate revision", func(t *testing.T) {
		_, err := NewRegistry("", base, testRuleSet())
		assert.ErrorIs(t, err, ErrInvalidRuleSet)
	})

	t.Run("no sets", func(t *testing.T) {
		_, err := NewRegistry("")
		assert.ErrorIs(t, err, ErrInvalidRuleSet)
	})

	t.Run("invalid set", func(t *testing.T) {
		broken := testRuleSet()
		broken.Revision = "broken"
		broken.Parking = nil
		_, err := NewRegistry("", base, broken)
		assert.ErrorIs(t, err, ErrInvalidRuleSet)
	})
}

func TestRegistry_Evaluator(t *testing.T) {
	reg, err := NewRegistry("", testRuleSet())
	require.NoError(t, err)

	_, err = reg.Evaluator("2031-draft")
	assert.ErrorIs(t, err, ErrInvalidInput)

	ev, err := reg.Evaluator("test")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFloorToFloorHeight, ev.FloorToFloorHeight())
}

func TestRegistry_RuleSetIsACopy(t *testing.T) {
	reg, err := NewRegistry("", testRuleSet())
	require.NoError(t, err)

	rs, ok := reg.RuleSet("")
	require.True(t, ok)
	assert.Equal(t, models.MatchPrefix, rs.MatchMode)
	rs.FSI[0].FSI = 42

	again, ok := reg.RuleSet("test")
	require.True(t, ok)
	assert.NotEqual(t, 42.0, again.FSI[0].FSI)

	_, ok = reg.RuleSet("nope")
	assert.False(t, ok)
}
