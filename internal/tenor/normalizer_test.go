package tenor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Classification(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"central bank meeting", "FED_Jan_25", "FED_Jan_25"},
		{"central bank meeting ECB", "ECB_Mar_25", "ECB_Mar_25"},
		{"imm future", "IMM3", "IMM3"},
		{"quarter end", "EOQ5", "EOQ5"},
		{"quarter begin", "BOQ6", "BOQ6"},
		{"futures style F", "F1", "F1"},
		{"futures style M", "M2", "M2"},
		{"overnight", "ON", "ON"},
		{"tom next relative", "TN+1", "TN+1"},
		{"spot next", "SN", "SN"},
		{"month boundary begin", "BOM5", "5M"},
		{"month boundary end", "EOM3", "3M"},
		{"month boundary embedded", "EOM12x3", "12M"},
		{"time based weeks", "2W", "2W"},
		{"time based days", "30D", "30D"},
		{"time based years", "3Y", "3Y"},
		{"explicit date", "20250630", "20250630"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_PrefixStripping(t *testing.T) {
	assert.Equal(t, Normalize("2W"), Normalize("SP-2W"))
	assert.Equal(t, Normalize("2W"), Normalize("SP:2W"))
	assert.Equal(t, "IMM1", Normalize("SP-IMM1"))
}

func TestNormalize_UnrecognizedReturnedVerbatim(t *testing.T) {
	// Unrecognized input is preserved, never dropped.
	assert.Equal(t, "weird!!", Normalize("weird!!"))
	assert.Equal(t, "1X", Normalize("1X"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"FED_Jan_25", "IMM3", "EOQ5", "F1", "ON", "TN+1",
		"BOM5", "EOM12x3", "2W", "20250630", "weird!!", "SP-1M",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize not idempotent for %q", input)
	}
}

func TestIsExplicitDate(t *testing.T) {
	assert.True(t, IsExplicitDate("20250630"))
	assert.False(t, IsExplicitDate("2M"))
	assert.False(t, IsExplicitDate("2025063"))
	assert.False(t, IsExplicitDate(""))
}
