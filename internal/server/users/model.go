package users

import "time"

type User struct {
	ID           int64
	Name         string
	Age          int
	Address      string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}
