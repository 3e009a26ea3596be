package models

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
