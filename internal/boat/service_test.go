package boat

import (
	"context"
	"testing"

	"github.com/adamg02/boatbooking/internal/group"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBoatRepo struct{ mock.Mock }
type MockGroupRepo struct{ mock.Mock }

func (m *MockBoatRepo) Create(ctx context.Context, req CreateBoatRequest) (*Boat, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Boat), args.Error(1)
}

func (m *MockBoatRepo) GetByID(ctx context.Context, id int) (*Boat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Boat), args.Error(1)
}

func (m *MockBoatRepo) ListActive(ctx context.Context) ([]Boat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Boat), args.Error(1)
}

func (m *MockBoatRepo) ListAllWithGroups(ctx context.Context) ([]BoatWithGroups, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BoatWithGroups), args.Error(1)
}

func (m *MockBoatRepo) Update(ctx context.Context, id int, req UpdateBoatRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockBoatRepo) SetGroups(ctx context.Context, boatID int, groupIDs []int) error {
	return m.Called(ctx, boatID, groupIDs).Error(0)
}

func (m *MockBoatRepo) GroupNames(ctx context.Context, boatID int) ([]GroupRef, error) {
	args := m.Called(ctx, boatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]GroupRef), args.Error(1)
}

func (m *MockGroupRepo) Create(ctx context.Context, name string) (*group.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Group), args.Error(1)
}

func (m *MockGroupRepo) GetByID(ctx context.Context, id int) (*group.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Group), args.Error(1)
}

func (m *MockGroupRepo) GetDetails(ctx context.Context, id int) (*group.GroupDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.GroupDetails), args.Error(1)
}

func (m *MockGroupRepo) ListAll(ctx context.Context) ([]group.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]group.Group), args.Error(1)
}

func (m *MockGroupRepo) Rename(ctx context.Context, id int, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockGroupRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGroupRepo) ListIDsForUser(ctx context.Context, userID int) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockGroupRepo) IsUserAdmin(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func TestService_ListVisible(t *testing.T) {
	repo := new(MockBoatRepo)
	groupRepo := new(MockGroupRepo)

	groupRepo.On("ListIDsForUser", mock.Anything, 7).Return([]int{2}, nil)
	repo.On("ListActive", mock.Anything).Return([]Boat{
		{ID: 1, Name: "Open Skiff", IsActive: true},
		{ID: 2, Name: "Racing Shell", IsActive: true, GroupIDs: []int{3}},
		{ID: 3, Name: "Junior Dinghy", IsActive: true, GroupIDs: []int{2, 3}},
	}, nil)
	repo.On("GroupNames", mock.Anything, 1).Return([]GroupRef{}, nil)
	repo.On("GroupNames", mock.Anything, 3).Return([]GroupRef{{ID: 2, Name: "Juniors"}}, nil)

	svc := NewService(repo, groupRepo)
	visible, err := svc.ListVisible(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, visible, 2)
	assert.Equal(t, "Open Skiff", visible[0].Name)
	assert.Equal(t, "Junior Dinghy", visible[1].Name)
	repo.AssertNotCalled(t, "GroupNames", mock.Anything, 2)
}

func TestService_GetVisibleByID(t *testing.T) {
	t.Run("unrestricted boat", func(t *testing.T) {
		repo := new(MockBoatRepo)
		groupRepo := new(MockGroupRepo)

		repo.On("GetByID", mock.Anything, 1).Return(&Boat{ID: 1, Name: "Open Skiff", IsActive: true}, nil)
		groupRepo.On("ListIDsForUser", mock.Anything, 7).Return([]int{}, nil)
		repo.On("GroupNames", mock.Anything, 1).Return([]GroupRef{}, nil)

		b, err := NewService(repo, groupRepo).GetVisibleByID(context.Background(), 7, 1)

		assert.NoError(t, err)
		assert.Equal(t, "Open Skiff", b.Name)
	})

	t.Run("restricted boat without membership", func(t *testing.T) {
		repo := new(MockBoatRepo)
		groupRepo := new(MockGroupRepo)

		repo.On("GetByID", mock.Anything, 2).Return(&Boat{ID: 2, IsActive: true, GroupIDs: []int{3}}, nil)
		groupRepo.On("ListIDsForUser", mock.Anything, 7).Return([]int{2}, nil)

		_, err := NewService(repo, groupRepo).GetVisibleByID(context.Background(), 7, 2)

		assert.ErrorIs(t, err, ErrBoatAccessDenied)
	})

	t.Run("deactivated boat reads as missing", func(t *testing.T) {
		repo := new(MockBoatRepo)
		groupRepo := new(MockGroupRepo)

		repo.On("GetByID", mock.Anything, 4).Return(&Boat{ID: 4, IsActive: false}, nil)

		_, err := NewService(repo, groupRepo).GetVisibleByID(context.Background(), 7, 4)

		assert.ErrorIs(t, err, ErrBoatNotFound)
	})
}

func TestService_SetGroups(t *testing.T) {
	repo := new(MockBoatRepo)
	groupRepo := new(MockGroupRepo)

	repo.On("GetByID", mock.Anything, 1).Return(&Boat{ID: 1, IsActive: true}, nil)
	repo.On("SetGroups", mock.Anything, 1, []int{2, 3}).Return(nil)

	err := NewService(repo, groupRepo).SetGroups(context.Background(), 1, []int{2, 3})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_SetGroups_MissingBoat(t *testing.T) {
	repo := new(MockBoatRepo)

	repo.On("GetByID", mock.Anything, 99).Return(nil, ErrBoatNotFound)

	err := NewService(repo, new(MockGroupRepo)).SetGroups(context.Background(), 99, []int{2})

	assert.ErrorIs(t, err, ErrBoatNotFound)
	repo.AssertNotCalled(t, "SetGroups", mock.Anything, mock.Anything, mock.Anything)
}
