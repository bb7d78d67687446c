package admin

import "time"

// Admin is a backoffice account. PasswordHash is a bcrypt hash and is never serialized.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
