package domain

import (
	"regexp"
	"strings"
	"time"
)

// Default pagination bounds for list requests.
const (
	DefaultListLimit  = 100
	MaxListLimit      = 1000
	DefaultListOffset = 0
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// ActivityConfig carries the activity timeout and retry policy inside each
// workflow request. Workflow code must not read process configuration
// directly (that would break replay determinism), so the dispatch layer
// resolves the policy once at submission time and the workflow applies it
// verbatim on every replay.
type ActivityConfig struct {
	// TimeoutSeconds bounds a single activity attempt, sized for one
	// database round trip.
	TimeoutSeconds int `json:"timeout_seconds"`

	// Retry policy for infrastructure failures. Business outcomes are
	// returned as values and never pass through this policy.
	RetryInitialIntervalMS  int     `json:"retry_initial_interval_ms"`
	RetryBackoffCoefficient float64 `json:"retry_backoff_coefficient"`
	RetryMaxIntervalSeconds int     `json:"retry_max_interval_seconds"`
	RetryMaxAttempts        int32   `json:"retry_max_attempts"`
}

// DefaultActivityConfig returns the stock policy: short initial backoff,
// exponential growth capped at a minute, bounded attempts.
func DefaultActivityConfig() ActivityConfig {
	return ActivityConfig{
		TimeoutSeconds:          30,
		RetryInitialIntervalMS:  1000,
		RetryBackoffCoefficient: 2.0,
		RetryMaxIntervalSeconds: 60,
		RetryMaxAttempts:        5,
	}
}

// Normalize fills zero-valued fields from the defaults so a partially
// configured request still yields a sane policy.
func (c ActivityConfig) Normalize() ActivityConfig {
	def := DefaultActivityConfig()
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.RetryInitialIntervalMS <= 0 {
		c.RetryInitialIntervalMS = def.RetryInitialIntervalMS
	}
	if c.RetryBackoffCoefficient <= 1.0 {
		c.RetryBackoffCoefficient = def.RetryBackoffCoefficient
	}
	if c.RetryMaxIntervalSeconds <= 0 {
		c.RetryMaxIntervalSeconds = def.RetryMaxIntervalSeconds
	}
	if c.RetryMaxAttempts <= 0 {
		c.RetryMaxAttempts = def.RetryMaxAttempts
	}
	return c
}

// Timeout returns the per-attempt activity timeout as a duration.
func (c ActivityConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryInitialInterval returns the first backoff interval as a duration.
func (c ActivityConfig) RetryInitialInterval() time.Duration {
	return time.Duration(c.RetryInitialIntervalMS) * time.Millisecond
}

// RetryMaxInterval returns the backoff cap as a duration.
func (c ActivityConfig) RetryMaxInterval() time.Duration {
	return time.Duration(c.RetryMaxIntervalSeconds) * time.Second
}

// CreateUserInput is the payload for the create operation. Mobile doubles
// as the natural fraud-detection key.
type CreateUserInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	CreatedBy string `json:"created_by,omitempty"`
}

// Validate checks required fields and basic shape. Validation failures are
// business outcomes (400), never infrastructure errors.
func (in CreateUserInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrMissingName
	}
	if !strings.Contains(in.Email, "@") {
		return ErrInvalidEmail
	}
	if !mobilePattern.MatchString(in.Mobile) {
		return ErrInvalidMobile
	}
	return nil
}

// UpdateUserInput is a partial update: nil fields are left untouched.
// Re-applying the same input is a no-op beyond the first application.
type UpdateUserInput struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Mobile        *string `json:"mobile,omitempty"`
	SuspendStatus *bool   `json:"suspend_status,omitempty"`
	UpdatedBy     string  `json:"updated_by,omitempty"`
}

// Validate rejects an update that names no field and malformed values on
// the fields it does name.
func (in UpdateUserInput) Validate() error {
	if in.Name == nil && in.Email == nil && in.Mobile == nil && in.SuspendStatus == nil {
		return ErrEmptyUpdate
	}
	if in.Email != nil && !strings.Contains(*in.Email, "@") {
		return ErrInvalidEmail
	}
	if in.Mobile != nil && !mobilePattern.MatchString(*in.Mobile) {
		return ErrInvalidMobile
	}
	return nil
}

// ListUsersInput selects a page of users ordered by id ascending.
type ListUsersInput struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize applies the default page and clamps the limit.
func (in ListUsersInput) Normalize() ListUsersInput {
	if in.Limit <= 0 {
		in.Limit = DefaultListLimit
	}
	if in.Limit > MaxListLimit {
		in.Limit = MaxListLimit
	}
	if in.Offset < 0 {
		in.Offset = DefaultListOffset
	}
	return in
}

// CreateUserRequest is the workflow input for the create operation.
type CreateUserRequest struct {
	Input  CreateUserInput `json:"input"`
	Config ActivityConfig  `json:"config"`
}

// UpdateUserRequest is the workflow input for the update operation.
type UpdateUserRequest struct {
	UserID int64           `json:"user_id"`
	Input  UpdateUserInput `json:"input"`
	Config ActivityConfig  `json:"config"`
}

// GetUserRequest is the workflow input for the get operation.
type GetUserRequest struct {
	UserID int64          `json:"user_id"`
	Config ActivityConfig `json:"config"`
}

// ListUsersRequest is the workflow input for the list operation.
type ListUsersRequest struct {
	Input  ListUsersInput `json:"input"`
	Config ActivityConfig `json:"config"`
}

// CreateUserResult is the terminal outcome of the create workflow.
// Code 201 carries the created record; code 409 carries the id of the
// already-existing record sharing the mobile number.
type CreateUserResult struct {
	Code    int    `json:"code"`
	UserID  int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// UpdateUserResult is the terminal outcome of the update workflow.
// Updated reports whether a live row was touched.
type UpdateUserResult struct {
	Code    int    `json:"code"`
	UserID  int64  `json:"id"`
	Updated bool   `json:"updated"`
	Message string `json:"message,omitempty"`
}

// GetUserResult is the terminal outcome of the get workflow.
type GetUserResult struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// ListUsersResult is the terminal outcome of the list workflow, echoing
// the effective page bounds.
type ListUsersResult struct {
	Code   int    `json:"code"`
	Users  []User `json:"users"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
