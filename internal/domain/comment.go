package domain

import "time"

// Comment is a user-authored reply attached to a Post. Comments are
// listed chronologically and cascade-deleted with their post.
type Comment struct {
	Id      int64
	PostId  int64
	Author  User
	Text    string
	Created time.Time
}
