package models

import "time"

type UserRole string

const (
	UserRoleStandard UserRole = "standard"
	UserRoleAdmin    UserRole = "admin"
)

// ValidRole reports whether the value is one of the recognized roles.
func ValidRole(value string) bool {
	switch UserRole(value) {
	case UserRoleStandard, UserRoleAdmin:
		return true
	}
	return false
}

// SecurityQuestion is one question/answer pair chosen at registration.
// Answers are compared case-sensitively.
type SecurityQuestion struct {
	QuestionText string `json:"questionText"`
	AnswerText   string `json:"answerText"`
}

// User is one registered account. ID is the storage key; UserID is the
// human-facing sequence id assigned at creation. Accounts are never
// deleted, only disabled.
type User struct {
	ID                string
	UserID            int64
	Email             string
	PasswordHash      []byte
	FirstName         string
	LastName          string
	PhoneNumber       int64
	Address           string
	Role              UserRole
	IsDisabled        bool
	SecurityQuestions []SecurityQuestion
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
