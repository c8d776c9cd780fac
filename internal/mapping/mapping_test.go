package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, "Exporter", MapCode("1", ExportingStatusText, "fallback"))
	assert.Equal(t, "fallback", MapCode("9", ExportingStatusText, "fallback"))
}

func TestMapManagerRole(t *testing.T) {
	assert.Equal(t, "General manager", MapManagerRole("1", "", "Wet Mill Registration - ET"))
	assert.Equal(t, "Factory/Wet Mill Manager", MapManagerRole("3", "", "Wet Mill Registration - KE"))

	t.Run("should carry the free text role for code 99", func(t *testing.T) {
		assert.Equal(t, "Night supervisor", MapManagerRole("99", "Night supervisor", "Wet Mill Registration - ET"))
	})

	t.Run("should fall back to undefined", func(t *testing.T) {
		assert.Equal(t, "undefined", MapManagerRole("7", "", "Wet Mill Registration - ET"))
		assert.Equal(t, "undefined", MapManagerRole("1", "", "Unknown Survey"))
	})
}

func TestMapMillStatus(t *testing.T) {
	assert.Equal(t, "Private", MapMillStatus("2", "Wet Mill Registration - ET"))
	assert.Equal(t, "Estate", MapMillStatus("2", "Wet Mill Registration - KE"))
	assert.Equal(t, "undefined", MapMillStatus("5", "Wet Mill Registration - ET"))
}

func TestMapMulti(t *testing.T) {
	out := MapMulti("1 3 99", EnergyUseSourceText)
	assert.Equal(t, []string{"Mains electricity", "Solar panels"}, out)

	assert.Nil(t, MapMulti("", EnergyUseSourceText))
}

func TestDPOCriteriaSections(t *testing.T) {
	// Each demo plot criterion names a distinct form section.
	seen := map[string]bool{}
	for _, c := range DPOCriteria {
		assert.NotEmpty(t, c.Section)
		assert.NotEmpty(t, c.Criterion)
		assert.False(t, seen[c.Section], c.Section)
		seen[c.Section] = true
	}
}
