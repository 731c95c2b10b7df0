// Package domain defines the user record, the per-operation request and
// result types exchanged between the dispatch layer, workflows, and
// activities, and the sentinel errors shared across layers. Everything in
// this package is plain data: it must serialize cleanly through Temporal's
// payload converter and carry no behavior beyond validation.
package domain

import "time"

// User is the canonical user record. A non-nil DeletedOn marks the record
// as soft-deleted: logically absent from reads while the row persists.
// Only the activity layer mutates users; workflows and the dispatch layer
// see them as immutable payloads.
type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Mobile        string     `json:"mobile"`
	SuspendStatus bool       `json:"suspend_status"`
	CreatedBy     string     `json:"created_by,omitempty"`
	UpdatedBy     string     `json:"updated_by,omitempty"`
	DeletedBy     string     `json:"deleted_by,omitempty"`
	CreatedOn     time.Time  `json:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on"`
	DeletedOn     *time.Time `json:"deleted_on,omitempty"`
}

// DuplicateCheck is the minimal projection returned by the duplicate
// lookup activity: just enough to branch on and to report the conflicting
// record back to the caller. Absence is a value, never an error.
type DuplicateCheck struct {
	Found  bool   `json:"found"`
	UserID int64  `json:"user_id,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

// UpdateOutcome reports the result of a partial update. Updated is false
// when the id matched no live row; the store's update contract treats
// zero affected rows as a no-op rather than an error.
type UpdateOutcome struct {
	UserID  int64 `json:"user_id"`
	Updated bool  `json:"updated"`
}

// GetOutcome carries a user lookup result. Found distinguishes absence
// from infrastructure failure so the workflow never has to catch an
// error for a missing record.
type GetOutcome struct {
	Found bool  `json:"found"`
	User  *User `json:"user,omitempty"`
}
