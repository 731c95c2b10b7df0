package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateUserInput
		wantErr error
	}{
		{
			name:    "valid input",
			input:   CreateUserInput{Name: "John Doe", Email: "john@x.com", Mobile: "1234567890"},
			wantErr: nil,
		},
		{
			name:    "valid input with plus prefix",
			input:   CreateUserInput{Name: "Jane", Email: "jane@x.com", Mobile: "+14155550100"},
			wantErr: nil,
		},
		{
			name:    "missing name",
			input:   CreateUserInput{Name: "  ", Email: "john@x.com", Mobile: "1234567890"},
			wantErr: ErrMissingName,
		},
		{
			name:    "email without at sign",
			input:   CreateUserInput{Name: "John", Email: "john.x.com", Mobile: "1234567890"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "mobile too short",
			input:   CreateUserInput{Name: "John", Email: "john@x.com", Mobile: "123"},
			wantErr: ErrInvalidMobile,
		},
		{
			name:    "mobile with letters",
			input:   CreateUserInput{Name: "John", Email: "john@x.com", Mobile: "12345abcde"},
			wantErr: ErrInvalidMobile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateUserInputValidate(t *testing.T) {
	name := "New Name"
	badEmail := "not-an-email"
	goodEmail := "new@x.com"
	badMobile := "12"
	suspend := true

	tests := []struct {
		name    string
		input   UpdateUserInput
		wantErr error
	}{
		{name: "name only", input: UpdateUserInput{Name: &name}},
		{name: "suspend only", input: UpdateUserInput{SuspendStatus: &suspend}},
		{name: "valid email", input: UpdateUserInput{Email: &goodEmail}},
		{name: "empty update", input: UpdateUserInput{}, wantErr: ErrEmptyUpdate},
		{name: "bad email", input: UpdateUserInput{Email: &badEmail}, wantErr: ErrInvalidEmail},
		{name: "bad mobile", input: UpdateUserInput{Mobile: &badMobile}, wantErr: ErrInvalidMobile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListUsersInputNormalize(t *testing.T) {
	tests := []struct {
		name       string
		input      ListUsersInput
		wantLimit  int
		wantOffset int
	}{
		{name: "zero values get defaults", input: ListUsersInput{}, wantLimit: DefaultListLimit, wantOffset: 0},
		{name: "explicit page preserved", input: ListUsersInput{Limit: 25, Offset: 50}, wantLimit: 25, wantOffset: 50},
		{name: "negative offset reset", input: ListUsersInput{Limit: 10, Offset: -3}, wantLimit: 10, wantOffset: 0},
		{name: "limit clamped", input: ListUsersInput{Limit: 99999}, wantLimit: MaxListLimit, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Normalize()
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestActivityConfigNormalize(t *testing.T) {
	t.Run("zero config gets full defaults", func(t *testing.T) {
		got := ActivityConfig{}.Normalize()
		require.Equal(t, DefaultActivityConfig(), got)
	})

	t.Run("partial config keeps explicit fields", func(t *testing.T) {
		got := ActivityConfig{TimeoutSeconds: 5, RetryMaxAttempts: 2}.Normalize()
		assert.Equal(t, 5, got.TimeoutSeconds)
		assert.Equal(t, int32(2), got.RetryMaxAttempts)
		assert.Equal(t, 1000, got.RetryInitialIntervalMS)
		assert.Equal(t, 2.0, got.RetryBackoffCoefficient)
		assert.Equal(t, 60, got.RetryMaxIntervalSeconds)
	})

	t.Run("backoff coefficient below one is replaced", func(t *testing.T) {
		got := ActivityConfig{RetryBackoffCoefficient: 0.5}.Normalize()
		assert.Equal(t, 2.0, got.RetryBackoffCoefficient)
	})
}

func TestActivityConfigDurations(t *testing.T) {
	cfg := DefaultActivityConfig()
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, time.Second, cfg.RetryInitialInterval())
	assert.Equal(t, time.Minute, cfg.RetryMaxInterval())
}
