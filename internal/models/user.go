package models

import "time"

// User is a registered account. PasswordHash never leaves the backend.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	Created      time.Time `db:"created" json:"date_created"`
}
