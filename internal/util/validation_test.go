package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountForm struct {
	Name                 string `json:"name" validate:"required,min=2,max=50"`
	Username             string `json:"username" validate:"required,min=2,max=50,username"`
	Email                string `json:"email" validate:"omitempty,email"`
	Phone                string `json:"phone" validate:"omitempty,numeric,min=8,max=15"`
	Password             string `json:"password" validate:"omitempty,min=6,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func TestValidateStructPasses(t *testing.T) {
	fields := ValidateStruct(&accountForm{
		Name:     "Budi Santoso",
		Username: "budi_santoso",
		Email:    "budi@example.com",
		Phone:    "081234567890",
	})
	assert.True(t, fields.Empty())
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	fields := ValidateStruct(&accountForm{})

	require.Contains(t, fields, "name")
	require.Contains(t, fields, "username")
	assert.Equal(t, []string{"The name field is required."}, fields["name"])
}

func TestValidateStructUsernameCharset(t *testing.T) {
	fields := ValidateStruct(&accountForm{
		Name:     "Budi",
		Username: "budi santoso", // space not allowed
	})

	require.Contains(t, fields, "username")
	assert.Contains(t, fields["username"][0], "letters, numbers, dashes and underscores")
}

func TestValidateStructLengthBounds(t *testing.T) {
	fields := ValidateStruct(&accountForm{
		Name:     "B",
		Username: "ok",
		Phone:    "1234",
	})

	require.Contains(t, fields, "name")
	assert.Equal(t, "The name must be at least 2 characters.", fields["name"][0])
	require.Contains(t, fields, "phone")
	assert.Equal(t, "The phone must be at least 8 characters.", fields["phone"][0])
}

func TestValidateStructPhoneNumeric(t *testing.T) {
	fields := ValidateStruct(&accountForm{
		Name:     "Budi",
		Username: "budi",
		Phone:    "0812-345-678", // digits only, no separators
	})

	require.Contains(t, fields, "phone")
	assert.Equal(t, "The phone must be a number.", fields["phone"][0])
}

func TestValidateStructPasswordConfirmation(t *testing.T) {
	fields := ValidateStruct(&accountForm{
		Name:                 "Budi",
		Username:             "budi",
		Password:             "rahasia123",
		PasswordConfirmation: "rahasia124",
	})

	require.Contains(t, fields, "password")
	assert.Equal(t, "The password confirmation does not match.", fields["password"][0])
}

func TestFieldErrorsAccumulate(t *testing.T) {
	fields := FieldErrors{}
	assert.True(t, fields.Empty())

	fields.Add("email", "The email has already been taken.")
	fields.Add("email", "The email must be a valid email address.")

	assert.False(t, fields.Empty())
	assert.Len(t, fields["email"], 2)
}
