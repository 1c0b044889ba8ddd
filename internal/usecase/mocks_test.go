package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/lead-management/internal/entity"
	"github.com/xavierca1/lead-management/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, pageable entity.Pageable) (entity.Page[*entity.Lead], error) {
	args := m.Called(ctx, pageable)
	return args.Get(0).(entity.Page[*entity.Lead]), args.Error(1)
}

func (m *MockLeadRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInterestRepository
type MockInterestRepository struct {
	mock.Mock
}

func (m *MockInterestRepository) Save(ctx context.Context, interest *entity.Interest) (*entity.Interest, error) {
	args := m.Called(ctx, interest)
	if fn, ok := args.Get(0).(func(context.Context, *entity.Interest) *entity.Interest); ok {
		return fn(ctx, interest), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Interest), args.Error(1)
}

func (m *MockInterestRepository) FindByID(ctx context.Context, id int64) (*entity.Interest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Interest), args.Error(1)
}

func (m *MockInterestRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterestRepository) FindAll(ctx context.Context, pageable entity.Pageable) (entity.Page[*entity.Interest], error) {
	args := m.Called(ctx, pageable)
	return args.Get(0).(entity.Page[*entity.Interest]), args.Error(1)
}

func (m *MockInterestRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEntityEvent(ctx context.Context, event queue.EntityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// passthroughTx runs fn directly and counts the calls.
type passthroughTx struct {
	calls int
}

func (t *passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func eventMatching(entityName, action string, id int64) interface{} {
	return mock.MatchedBy(func(e queue.EntityEvent) bool {
		return e.Entity == entityName && e.Action == action && e.EntityID == id
	})
}
