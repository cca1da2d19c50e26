package domain

import "time"

type User struct {
	Id        int64
	Username  string
	Email     string
	PassHash  string
	Admin     bool
	CreatedAt time.Time
}
