package models

// User is an account owner. The password hash never leaves the server.
type User struct {
	ID           int64  `db:"id" json:"id"`
	UserName     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}
