package models

// Task is a to-do item owned by exactly one user. UserID never changes
// after creation.
type Task struct {
	ID          int64  `db:"id" json:"id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	Description string `db:"description" json:"description"`
	Completed   bool   `db:"completed" json:"completed"`
}
