package models

import "time"

// Task represents one to-do item in the journal's task list.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    string
	Completed   bool
	CreatedAt   time.Time
}
