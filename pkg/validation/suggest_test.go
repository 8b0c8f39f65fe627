package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestNumericFix(t *testing.T) {
	s := SuggestNumericFix("transaction_id", "12345678O9", SchemaTransactionID)
	require.NotNil(t, s)
	assert.Equal(t, "1234567809", s.Suggested)

	// Already clean values yield nothing.
	assert.Nil(t, SuggestNumericFix("transaction_id", "1234567809", SchemaTransactionID))
	// A swap that still fails the schema is not suggested.
	assert.Nil(t, SuggestNumericFix("transaction_id", "OI", SchemaTransactionID))
}

func TestSuggestStationFix(t *testing.T) {
	s := SuggestStationFix("boarding_station", "NDL5", "")
	require.NotNil(t, s)
	assert.Equal(t, "NDLS", s.Suggested)

	s = SuggestStationFix("destination_station", "XX", "NEW DELHI")
	require.NotNil(t, s)
	assert.Equal(t, "NDLS", s.Suggested)

	// Known codes need no fixing.
	assert.Nil(t, SuggestStationFix("boarding_station", "NDLS", "NEW DELHI"))
}

func TestSuggestGender(t *testing.T) {
	s := SuggestGender("passenger_0_gender", "SUNITA DEVI")
	require.NotNil(t, s)
	assert.Equal(t, "Female", s.Suggested)

	s = SuggestGender("passenger_0_gender", "RAM KUMAR")
	require.NotNil(t, s)
	assert.Equal(t, "Male", s.Suggested)

	assert.Nil(t, SuggestGender("passenger_0_gender", "ALEX"))
}
