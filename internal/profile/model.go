// Package profile maintains the local denormalized profile cache: one record
// per username linking it to the hosted identity-service account id and an
// optional email. The upsert service is the only writer and it merges, never
// replaces.
package profile

import "time"

// Record is the profile row for one username.
//
// AuthUserID and Email use the empty string for "unset" in stored form; the
// upsert API distinguishes "not provided" from "provided empty" via pointer
// arguments instead.
type Record struct {
	Username   string    `json:"username"`
	AuthUserID string    `json:"auth_user_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
