package models

import "time"

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext; it must not appear in any API response.
type User struct {
	ID          string
	Name        string
	Email       string
	UserName    string
	Password    string
	PhoneNumber string
	History     string
	CreatedAt   time.Time
}
