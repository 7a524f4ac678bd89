package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestStruct_TranslatesPerLocale(t *testing.T) {
	v := NewValidator()

	enErrors := v.Struct(&signupForm{})
	require.Len(t, enErrors, 2)
	assert.Equal(t, "name", enErrors[0].Domain)
	// the default locale stays English even with Spanish registered
	assert.Contains(t, enErrors[0].Reason, "required")

	esErrors := v.Locale("es").Struct(&signupForm{})
	require.Len(t, esErrors, 2)
	assert.Equal(t, "name", esErrors[0].Domain)
	assert.NotEqual(t, enErrors[0].Reason, esErrors[0].Reason)
}

func TestLocale_UnknownFallsBack(t *testing.T) {
	v := NewValidator()

	fieldErrors := v.Locale("fr").Struct(&signupForm{Name: "Ana"})
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "email", fieldErrors[0].Domain)
	assert.Contains(t, fieldErrors[0].Reason, "required")
}
