package boat

import "context"

type Repository interface {
	Create(ctx context.Context, req CreateBoatRequest) (*Boat, error)
	GetByID(ctx context.Context, id int) (*Boat, error)
	ListActive(ctx context.Context) ([]Boat, error)
	ListAllWithGroups(ctx context.Context) ([]BoatWithGroups, error)
	Update(ctx context.Context, id int, req UpdateBoatRequest) error
	SetGroups(ctx context.Context, boatID int, groupIDs []int) error
	GroupNames(ctx context.Context, boatID int) ([]GroupRef, error)
}
