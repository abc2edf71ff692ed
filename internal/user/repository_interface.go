package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	IsActive(ctx context.Context, id int) (bool, error)
	ListWithGroups(ctx context.Context) ([]UserWithGroups, error)
	SetGroups(ctx context.Context, userID int, groupIDs []int) error
	SetActive(ctx context.Context, userID int, active bool) error
}
