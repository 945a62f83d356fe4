package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenarios(t *testing.T) {
	data := []byte(`
Passivhaus_Neubau:
  description: Passivhaus-Standard Neubau
  constructions:
    AT_Außenwand_WDVS_Standard: AT_Außenwand_Passivhaus
Klimawandel_2050:
  weather_file: weather/AUT_SZ_Salzburg_2050.epw
`)
	got, err := ParseScenarios(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Klimawandel_2050", got[0].Name)
	assert.Equal(t, "weather/AUT_SZ_Salzburg_2050.epw", got[0].Weather())

	assert.Equal(t, "Passivhaus_Neubau", got[1].Name)
	assert.Equal(t, DefaultWeatherFile, got[1].Weather())
	assert.Equal(t, "AT_Außenwand_Passivhaus", got[1].Constructions["AT_Außenwand_WDVS_Standard"])
}

func TestParseScenarios_Invalid(t *testing.T) {
	_, err := ParseScenarios([]byte("- just\n- a list\n"))
	assert.Error(t, err)
}

func TestSalzburgScenarios(t *testing.T) {
	sc := SalzburgScenarios()
	require.Len(t, sc, 3)
	assert.Equal(t, "Bestand_Sanierung", sc[0].Name)
	assert.Len(t, sc[2].Constructions, 3)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusRunning))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusFailed))
	assert.True(t, IsTerminal(StatusCancelled))
}
