package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReport(t *testing.T) {
	v, err := EnergyBalance(BalanceInput{
		SolarMW:   []float64{0, 5, 10, 5, 0},
		BatteryMW: []float64{0, 0, 0, 0, 0},
		DtHours:   1,
	}, DefaultThresholds())
	require.NoError(t, err)

	out := FormatReport(v)
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "energy_balance")
	assert.Contains(t, out, "Overall: Valid")
	assert.Contains(t, out, "solar energy")

	// Failing checks carry their suggestion on a follow-up line.
	bad, err := EnergyBalance(BalanceInput{
		SolarMW:   []float64{10, 10},
		BatteryMW: []float64{5, 5},
		DtHours:   1,
	}, DefaultThresholds())
	require.NoError(t, err)
	badOut := FormatReport(bad)
	assert.Contains(t, badOut, "[CRIT]")
	assert.Contains(t, badOut, "->")

	assert.Equal(t, "", FormatReport(nil))
}

func TestSeverityStringsAndMarkers(t *testing.T) {
	assert.Equal(t, "Valid", SeverityValid.String())
	assert.Equal(t, "Critical", SeverityCritical.String())
	assert.Equal(t, "[WARN]", SeverityWarning.Marker())
	assert.Equal(t, "[ERR]", SeverityError.Marker())
	assert.True(t, strings.HasPrefix(SeverityValid.Marker(), "[OK"))
}
