package dto

import "github.com/thierryazur06/site-api/internal/domain/entity"

// SessionUser is returned with a newly issued token.
type SessionUser struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// Profile is the caller's own account.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func NewSessionUser(u *entity.User) SessionUser {
	return SessionUser{ID: u.ID, Email: u.Email, MustChangePassword: u.MustChangePassword}
}

func NewProfile(u *entity.User) Profile {
	return Profile{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}
