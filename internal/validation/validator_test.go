package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Book(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(domain.BookInput{ISBN: "1", Title: "T", Author: "A", Copies: 0}))

	tests := []struct {
		name   string
		in     domain.BookInput
		fields []string
	}{
		{name: "missing title", in: domain.BookInput{ISBN: "1", Author: "A"}, fields: []string{"title"}},
		{name: "negative copies", in: domain.BookInput{ISBN: "1", Title: "T", Author: "A", Copies: -1}, fields: []string{"copies"}},
		{name: "empty", in: domain.BookInput{}, fields: []string{"isbn", "title", "author"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			var valErr *domain.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Len(t, valErr.Fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, valErr.Fields, f)
			}
			assert.Equal(t, "Please fill all required fields correctly", err.Error())
		})
	}
}

func TestValidator_MemberEmail(t *testing.T) {
	v := validation.New()

	valid := []string{"a@b.co", "first.last@library.example.org"}
	for _, email := range valid {
		assert.NoError(t, v.Validate(domain.MemberInput{Name: "N", Email: email}), email)
	}

	invalid := []string{"plain", "a@b", "a b@c.d", "@b.co", "a@.co "}
	for _, email := range invalid {
		err := v.Validate(domain.MemberInput{Name: "N", Email: email})
		require.Error(t, err, email)
		assert.Equal(t, "Please enter a valid email address", err.Error(), email)
	}
}

func TestValidator_LoanDueDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	v := validation.New(validation.WithClock(func() time.Time { return now }))

	base := domain.LoanInput{MemberID: "m", BookID: "b"}

	today := base
	today.DueAt = time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	assert.NoError(t, v.Validate(today))

	past := base
	past.DueAt = time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local)
	err := v.Validate(past)
	require.Error(t, err)
	assert.Equal(t, "Due date cannot be in the past", err.Error())

	missing := domain.LoanInput{DueAt: now}
	err = v.Validate(missing)
	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields, "memberId")
	assert.Contains(t, valErr.Fields, "bookId")
}
