package group

import (
	"context"
	"errors"
	"strings"
)

var ErrAdminGroupImmutable = errors.New("the Admin group cannot be renamed or deleted")

type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (*Group, error)
	GetDetails(ctx context.Context, id int) (*GroupDetails, error)
	ListAll(ctx context.Context) ([]Group, error)
	Rename(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
	UserGroupIDs(ctx context.Context, userID int) ([]int, error)
	IsUserAdmin(ctx context.Context, userID int) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func isAdminGroup(name string) bool {
	return strings.EqualFold(name, AdminGroupName)
}

func (s *service) Create(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	return s.repo.Create(ctx, req.Name)
}

func (s *service) GetDetails(ctx context.Context, id int) (*GroupDetails, error) {
	return s.repo.GetDetails(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]Group, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Rename(ctx context.Context, id int, name string) error {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if isAdminGroup(group.Name) {
		return ErrAdminGroupImmutable
	}

	// Renaming another group to "Admin" would mint a second admin group.
	if isAdminGroup(name) {
		return ErrAdminGroupImmutable
	}

	return s.repo.Rename(ctx, id, name)
}

func (s *service) Delete(ctx context.Context, id int) error {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if isAdminGroup(group.Name) {
		return ErrAdminGroupImmutable
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) UserGroupIDs(ctx context.Context, userID int) ([]int, error) {
	return s.repo.ListIDsForUser(ctx, userID)
}

func (s *service) IsUserAdmin(ctx context.Context, userID int) (bool, error) {
	return s.repo.IsUserAdmin(ctx, userID)
}
