package models

const (
	// RoleTeacher can review, grade and delete submissions.
	RoleTeacher = "teacher"
	// RoleStudent can only view the dashboard.
	RoleStudent = "student"
)

// User is a static identity record. Accounts are seeded at startup and never
// created or mutated through the API.
type User struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
