// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "display_name", "Haeun", false},
		{"empty_string", "display_name", "", true},
		{"whitespace_only", "display_name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "reader@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "reader@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Slug checks the work-identifier slug format rule.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		isValid bool
	}{
		{"simple", "solo-leveling", true},
		{"with_digits", "tower-of-god-2", true},
		{"single_word", "omniscient", true},
		{"uppercase", "Solo-Leveling", false},
		{"leading_hyphen", "-solo", false},
		{"trailing_hyphen", "solo-", false},
		{"double_hyphen", "solo--leveling", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("work_id", tt.slug)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Positive checks the fractional chapter number rule.
*/
func TestValidator_Positive(t *testing.T) {
	tests := []struct {
		name    string
		chapter float64
		isValid bool
	}{
		{"whole_chapter", 42, true},
		{"fractional_chapter", 5.5, true},
		{"zero", 0, false},
		{"negative", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Positive("chapter", tt.chapter)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_OneOf checks the enumerated-value rule used for list statuses.
*/
func TestValidator_OneOf(t *testing.T) {
	allowed := []string{"reading", "completed", "on_hold", "dropped"}

	v := &validate.Validator{}
	v.OneOf("status", "completed", allowed...)
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.OneOf("status", "finished", allowed...)
	require.True(t, v.HasErrors())

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "status", ae.Details[0].Field)
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("display_name", "haeun").
		MinLen("display_name", "haeun", 3).
		MaxLen("display_name", "haeun", 10).
		Email("email", "haeun@dokseo.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("display_name", "").   // Fails
		MinLen("password", "a", 8).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
