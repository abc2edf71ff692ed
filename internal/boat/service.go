package boat

import (
	"context"
	"errors"

	"github.com/adamg02/boatbooking/internal/group"
)

var ErrBoatAccessDenied = errors.New("no permission to use this boat")

type Service interface {
	ListVisible(ctx context.Context, userID int) ([]BoatWithGroups, error)
	GetVisibleByID(ctx context.Context, userID, boatID int) (*BoatWithGroups, error)
	Create(ctx context.Context, req CreateBoatRequest) (*Boat, error)
	Update(ctx context.Context, boatID int, req UpdateBoatRequest) error
	SetGroups(ctx context.Context, boatID int, groupIDs []int) error
	ListAllWithGroups(ctx context.Context) ([]BoatWithGroups, error)
}

type service struct {
	repo      Repository
	groupRepo group.Repository
}

func NewService(repo Repository, groupRepo group.Repository) Service {
	return &service{
		repo:      repo,
		groupRepo: groupRepo,
	}
}

// ListVisible returns active boats the user's groups admit, with group
// names attached for display.
func (s *service) ListVisible(ctx context.Context, userID int) ([]BoatWithGroups, error) {
	userGroupIDs, err := s.groupRepo.ListIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	boats, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]BoatWithGroups, 0, len(boats))
	for _, b := range boats {
		if !AccessibleBy(b.GroupIDs, userGroupIDs) {
			continue
		}

		groups, err := s.repo.GroupNames(ctx, b.ID)
		if err != nil {
			return nil, err
		}

		visible = append(visible, BoatWithGroups{Boat: b, Groups: groups})
	}

	return visible, nil
}

func (s *service) GetVisibleByID(ctx context.Context, userID, boatID int) (*BoatWithGroups, error) {
	b, err := s.repo.GetByID(ctx, boatID)
	if err != nil {
		return nil, err
	}

	if !b.IsActive {
		return nil, ErrBoatNotFound
	}

	userGroupIDs, err := s.groupRepo.ListIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !AccessibleBy(b.GroupIDs, userGroupIDs) {
		return nil, ErrBoatAccessDenied
	}

	groups, err := s.repo.GroupNames(ctx, boatID)
	if err != nil {
		return nil, err
	}

	return &BoatWithGroups{Boat: *b, Groups: groups}, nil
}

func (s *service) Create(ctx context.Context, req CreateBoatRequest) (*Boat, error) {
	return s.repo.Create(ctx, req)
}

func (s *service) Update(ctx context.Context, boatID int, req UpdateBoatRequest) error {
	return s.repo.Update(ctx, boatID, req)
}

func (s *service) SetGroups(ctx context.Context, boatID int, groupIDs []int) error {
	if _, err := s.repo.GetByID(ctx, boatID); err != nil {
		return err
	}
	return s.repo.SetGroups(ctx, boatID, groupIDs)
}

func (s *service) ListAllWithGroups(ctx context.Context) ([]BoatWithGroups, error) {
	return s.repo.ListAllWithGroups(ctx)
}
