package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Address      string    `json:"address,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Role         string    `json:"role"`
	Provider     string    `json:"provider,omitempty"`
	ProviderID   string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Rôles valides (le rôle par défaut est "user")
var ValidRoles = []string{"user", "admin"}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
