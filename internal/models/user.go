// Package models contains the user record persisted by the ORM together with
// the request and response shapes used by the HTTP layer.
package models

import "time"

// DateLayout is the only accepted birthdate format (ISO calendar date).
const DateLayout = "2006-01-02"

// User is the persisted user record. The table is created from this struct
// at startup.
type User struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null"`
	Birthdate time.Time `gorm:"type:date;not null"`
	Active    bool      `gorm:"not null;default:true;index"`
}

// TableName pins the table name regardless of naming strategy.
func (User) TableName() string { return "users" }

// DummyUser is the body of a create request. Birthdate stays a string so it
// can be parsed with DateLayout after validation.
type DummyUser struct {
	Name      string `json:"name" validate:"required" example:"Lucas Garcia"`
	Birthdate string `json:"birthdate" validate:"required" example:"1991-10-01"`
}

// DummyState is the body of a state update request. Active is a pointer so an
// absent field can be told apart from false.
type DummyState struct {
	Active *bool `json:"active" validate:"required" example:"false"`
}

// UserResponse is the JSON representation of a user.
type UserResponse struct {
	ID        int    `json:"id" example:"1"`
	Name      string `json:"name" example:"Lucas Garcia"`
	Birthdate string `json:"birthdate" example:"1991-10-01"`
	Active    bool   `json:"active" example:"true"`
}

// Response converts the record into its JSON representation.
func (u User) Response() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Birthdate: u.Birthdate.Format(DateLayout),
		Active:    u.Active,
	}
}
