package user

import (
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
)

// User is the public view of an account; the password hash never leaves the store layer.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Response struct {
	User *User `json:"user"`
}

func FromDataModel(dm *userDatamodel.User) *User {
	if dm == nil {
		return nil
	}
	return &User{
		ID:    dm.ID,
		Email: dm.Email,
		Name:  dm.Name,
	}
}
