package user

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// GroupRef is the membership view used by admin listings.
type GroupRef struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type UserWithGroups struct {
	User
	Groups []GroupRef `json:"groups"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type MeResponse struct {
	User
	IsAdmin bool `json:"is_admin"`
}

type SetGroupsRequest struct {
	GroupIDs []int `json:"group_ids" binding:"required"`
}

type SetStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
