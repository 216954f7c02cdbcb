package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "John Doe", SanitizeText("  John Doe  "))
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", SanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "O&#39;Brien &amp; Sons", SanitizeText("O'Brien & Sons"))
	assert.Equal(t, "", SanitizeText("   "))
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, int64(7), CoerceInt(float64(7)))
	assert.Equal(t, int64(7), CoerceInt(" 7 "))
	assert.Equal(t, int64(0), CoerceInt("abc"))
	assert.Equal(t, int64(0), CoerceInt(nil))
	assert.Equal(t, int64(0), CoerceInt(true))
	assert.Equal(t, int64(3), CoerceInt(3.9))
}

func TestCoerceFloat(t *testing.T) {
	assert.Equal(t, 40.5, CoerceFloat(40.5))
	assert.Equal(t, 40.5, CoerceFloat("40.5"))
	assert.Equal(t, 0.0, CoerceFloat("not a price"))
	assert.Equal(t, 0.0, CoerceFloat(nil))
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "tomato.jpg", CoerceString("tomato.jpg"))
	assert.Equal(t, "", CoerceString(42.0))
	assert.Equal(t, "", CoerceString(nil))
}

func TestValidateRequiredString(t *testing.T) {
	assert.NoError(t, ValidateRequiredString("value", "name"))
	assert.EqualError(t, ValidateRequiredString("  ", "name"), "name is required")
}

func TestValidatePositiveInt64(t *testing.T) {
	assert.NoError(t, ValidatePositiveInt64(1, "id"))
	assert.EqualError(t, ValidatePositiveInt64(0, "id"), "id must be positive")
	assert.EqualError(t, ValidatePositiveInt64(-3, "id"), "id must be positive")
}
