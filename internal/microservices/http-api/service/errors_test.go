package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMessage(t *testing.T) {
	verr := NewValidationError("text", "required")
	verr.Add("email", "invalid")

	assert.Equal(t, "validation failed: email: invalid; text: required", verr.Error())
	assert.False(t, verr.Empty())
	assert.True(t, (&ValidationError{}).Empty())
}

func TestNewValidationErrorFrom_FieldErrors(t *testing.T) {
	type form struct {
		Name      string `validate:"required"`
		Email     string `validate:"required,email"`
		Text      string `validate:"max=3"`
		FeesInUSA int64  `validate:"gte=0"`
	}
	err := validator.New().Struct(form{Email: "nope", Text: "toolong", FeesInUSA: -1})
	require.Error(t, err)

	verr := NewValidationErrorFrom(err)

	assert.Equal(t, "This field is required.", verr.Fields["name"])
	assert.Equal(t, "Enter a valid email address.", verr.Fields["email"])
	assert.Equal(t, "Ensure this value has at most 3 characters.", verr.Fields["text"])
	assert.Equal(t, "Ensure this value is greater than or equal to 0.", verr.Fields["fees_in_usa"])
}

func TestNewValidationErrorFrom_DecodeErrors(t *testing.T) {
	var out struct {
		Year int `json:"year"`
	}
	err := json.Unmarshal([]byte(`{"year":"nineteen"}`), &out)
	assert.Contains(t, NewValidationErrorFrom(err).Fields, "year")

	assert.Contains(t, NewValidationErrorFrom(errors.New("EOF")).Fields, "non_field_errors")
}

func TestSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"Email":         "email",
		"WorldPremiere": "world_premiere",
		"FeesInUSA":     "fees_in_usa",
		"CategoryID":    "category_id",
		"ActorIDs":      "actor_ids",
	} {
		assert.Equal(t, want, snakeCase(in), in)
	}
}
