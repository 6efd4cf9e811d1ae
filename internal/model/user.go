package model

import "time"

// User is a registered player identity. IDs are assigned monotonically by
// storage on first registration and never reused while the process runs.
type User struct {
	ID         int
	Name       string
	SecretHash string
	CreatedAt  time.Time
}
