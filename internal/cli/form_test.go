package cli

import (
	"testing"

	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentOptions(t *testing.T) {
	opts := environmentOptions()
	require.Len(t, opts, 3)
	assert.Equal(t, "Schreibtisch", opts[0].Key)
	assert.Equal(t, domain.EnvDesk, opts[0].Value)
	assert.Equal(t, domain.EnvSupermarkt, opts[2].Value)
}

func TestLevelOptions_ExcludeOff(t *testing.T) {
	opts := levelOptions()
	require.Len(t, opts, 3)
	assert.Equal(t, "1 · Leicht", opts[0].Key)
	for _, o := range opts {
		assert.NotEqual(t, domain.LevelOff, o.Value)
	}
}

func TestSessionSetupForm_KeepsPreselection(t *testing.T) {
	env := domain.EnvHoersaal
	level := domain.LevelHigh

	form := sessionSetupForm(&env, &level)
	require.NotNil(t, form)
	assert.Equal(t, domain.EnvHoersaal, env)
	assert.Equal(t, domain.LevelHigh, level)
}
