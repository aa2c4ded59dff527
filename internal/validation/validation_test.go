package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type sessionRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=work short_break long_break"`
	Minutes int    `json:"minutes" validate:"min=1,max=180"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		fields map[string]string
	}{
		{name: "valid day", input: dayRequest{Date: "2025-03-12"}},
		{name: "missing day", input: dayRequest{}, fields: map[string]string{"date": "is required"}},
		{name: "malformed day", input: dayRequest{Date: "12/03/2025"}, fields: map[string]string{"date": "must be a date in YYYY-MM-DD format"}},
		{name: "valid session", input: sessionRequest{Kind: "work", Minutes: 25}},
		{
			name:  "bad session",
			input: sessionRequest{Kind: "nap", Minutes: 0},
			fields: map[string]string{
				"kind":    "must be one of: work short_break long_break",
				"minutes": "must be at least 1",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.True(t, errors.As(err, &verr), "expected *Error, got %v", err)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestErrorMessageIsStable(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "is required", "a": "is required"}}
	assert.Equal(t, "validation failed: a: is required, b: is required", err.Error())
}

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID("user-1"))
	assert.Error(t, ValidateUserID("   "))
	assert.Error(t, ValidateUserID(strings.Repeat("x", 129)))
}
