package domain

import "time"

// Memo is a note owned by the user who created it. Username is the owner
// field the authorization policy is evaluated against.
type Memo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is attached to a memo and owned by its author.
type Comment struct {
	ID        int64     `json:"id"`
	MemoID    int64     `json:"memo_id"`
	Username  string    `json:"username"`
	Contents  string    `json:"contents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
