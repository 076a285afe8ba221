package models

import "time"

// Session groups the messages a user has exchanged with the tutor about one
// topic. There is at most one session per (user, topic) pair.
type Session struct {
	ID      int64     `db:"id" json:"id"`
	UserID  int64     `db:"user_id" json:"user_id"`
	Topic   string    `db:"topic" json:"topic"`
	Created time.Time `db:"created" json:"date_created"`
}

// Message is one chat entry in a session, authored either by the user or by
// the tutor.
type Message struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	SessionID int64     `db:"session_id" json:"session_id"`
	Text      string    `db:"message" json:"message"`
	FromUser  bool      `db:"from_user" json:"from_user"`
	Created   time.Time `db:"created" json:"date_created"`
}
