package group

import "context"

type Repository interface {
	Create(ctx context.Context, name string) (*Group, error)
	GetByID(ctx context.Context, id int) (*Group, error)
	GetDetails(ctx context.Context, id int) (*GroupDetails, error)
	ListAll(ctx context.Context) ([]Group, error)
	Rename(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
	ListIDsForUser(ctx context.Context, userID int) ([]int, error)
	IsUserAdmin(ctx context.Context, userID int) (bool, error)
}
