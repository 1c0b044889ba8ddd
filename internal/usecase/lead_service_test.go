package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/lead-management/internal/entity"
	"github.com/xavierca1/lead-management/internal/infra/queue"
)

func TestLeadServiceSave(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	pub := new(MockPublisher)
	tx := &passthroughTx{}
	svc := NewLeadService(repo, tx, pub)

	repo.On("Save", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return !l.ID.Valid() && l.Name == "AAAAAAAAAA"
	})).Return(&entity.Lead{ID: entity.NewID(1), Name: "AAAAAAAAAA", Phone: 1000000000}, nil)
	pub.On("PublishEntityEvent", mock.Anything, eventMatching("lead", queue.ActionCreated, 1)).Return(nil)

	out, err := svc.Save(ctx, LeadDTO{ID: entity.NewID(99), Name: Of("AAAAAAAAAA"), Phone: Of(int64(1000000000))})

	require.NoError(t, err)
	assert.Equal(t, entity.NewID(1), out.ID)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestLeadServiceSaveValidation(t *testing.T) {
	repo := new(MockLeadRepository)
	svc := NewLeadService(repo, &passthroughTx{}, nil)

	t.Run("Missing name", func(t *testing.T) {
		_, err := svc.Save(context.Background(), LeadDTO{Phone: Of(int64(1000000000))})

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "validation", de.Code)
		assert.Equal(t, []ValidationError{{Field: "name", Message: "must not be null"}}, de.Fields)
	})

	t.Run("Blank name", func(t *testing.T) {
		_, err := svc.Save(context.Background(), LeadDTO{Name: Of("   "), Phone: Of(int64(1000000000))})

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "must not be blank", de.Fields[0].Message)
	})

	t.Run("Phone out of range", func(t *testing.T) {
		_, err := svc.Save(context.Background(), LeadDTO{Name: Of("A"), Phone: Of(int64(999999999))})

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "phone", de.Fields[0].Field)
	})

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLeadServicePublishFailureDoesNotFailRequest(t *testing.T) {
	repo := new(MockLeadRepository)
	pub := new(MockPublisher)
	svc := NewLeadService(repo, &passthroughTx{}, pub)

	repo.On("Save", mock.Anything, mock.Anything).Return(&entity.Lead{ID: entity.NewID(5), Name: "A", Phone: 1000000000}, nil)
	pub.On("PublishEntityEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	out, err := svc.Save(context.Background(), LeadDTO{Name: Of("A"), Phone: Of(int64(1000000000))})

	require.NoError(t, err)
	assert.Equal(t, entity.NewID(5), out.ID)
}

func TestLeadServiceUpdateIsFullReplace(t *testing.T) {
	repo := new(MockLeadRepository)
	svc := NewLeadService(repo, &passthroughTx{}, nil)

	repo.On("Save", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.ID.Equal(entity.NewID(3)) && l.CreatedBy == nil
	})).Return(&entity.Lead{ID: entity.NewID(3), Name: "B", Phone: 2000000000}, nil)

	out, err := svc.Update(context.Background(), LeadDTO{ID: entity.NewID(3), Name: Of("B"), Phone: Of(int64(2000000000))})

	require.NoError(t, err)
	assert.Equal(t, "B", out.Name.OrZero())
	assert.True(t, out.CreatedBy.IsNull())
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestLeadServiceUpdateVanishedRow(t *testing.T) {
	repo := new(MockLeadRepository)
	pub := new(MockPublisher)
	svc := NewLeadService(repo, &passthroughTx{}, pub)

	repo.On("Save", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("save lead: %w", entity.ErrNotFound))

	_, err := svc.Update(context.Background(), LeadDTO{ID: entity.NewID(3), Name: Of("B"), Phone: Of(int64(2000000000))})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "idnotfound", de.Code)
	pub.AssertNotCalled(t, "PublishEntityEvent", mock.Anything, mock.Anything)
}

func TestLeadServicePartialUpdate(t *testing.T) {
	createdBy := "system"

	t.Run("Merges present fields", func(t *testing.T) {
		repo := new(MockLeadRepository)
		svc := NewLeadService(repo, &passthroughTx{}, nil)

		existing := &entity.Lead{ID: entity.NewID(1), Name: "AAAAAAAAAA", Phone: 1000000000, CreatedBy: &createdBy}
		repo.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(existing, nil)

		out, found, err := svc.PartialUpdate(context.Background(), LeadDTO{
			ID:        entity.NewID(1),
			Name:      Of("BBBBBBBBBB"),
			CreatedBy: Null[string](),
		})

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "BBBBBBBBBB", out.Name.OrZero())
		assert.Equal(t, int64(1000000000), out.Phone.OrZero())
		assert.Equal(t, "system", out.CreatedBy.OrZero())
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockLeadRepository)
		svc := NewLeadService(repo, &passthroughTx{}, nil)
		repo.On("FindByID", mock.Anything, int64(42)).Return(nil, entity.ErrNotFound)

		_, found, err := svc.PartialUpdate(context.Background(), LeadDTO{ID: entity.NewID(42), Name: Of("X")})

		require.NoError(t, err)
		assert.False(t, found)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Invalid present field", func(t *testing.T) {
		repo := new(MockLeadRepository)
		svc := NewLeadService(repo, &passthroughTx{}, nil)

		_, _, err := svc.PartialUpdate(context.Background(), LeadDTO{ID: entity.NewID(1), Phone: Of(int64(12))})

		assert.True(t, IsDomainError(err))
	})
}

func TestLeadServiceFindOne(t *testing.T) {
	repo := new(MockLeadRepository)
	svc := NewLeadService(repo, &passthroughTx{}, nil)

	repo.On("FindByID", mock.Anything, int64(1)).Return(&entity.Lead{ID: entity.NewID(1), Name: "A", Phone: 1000000000}, nil)
	repo.On("FindByID", mock.Anything, int64(2)).Return(nil, entity.ErrNotFound)
	repo.On("FindByID", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))

	out, found, err := svc.FindOne(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "A", out.Name.OrZero())

	_, found, err = svc.FindOne(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = svc.FindOne(context.Background(), 3)
	var te *TechnicalError
	assert.ErrorAs(t, err, &te)
}

func TestLeadServiceFindAll(t *testing.T) {
	repo := new(MockLeadRepository)
	tx := &passthroughTx{}
	svc := NewLeadService(repo, tx, nil)

	pageable := entity.Pageable{Page: 0, Size: 20}
	repo.On("FindAll", mock.Anything, pageable).Return(entity.Page[*entity.Lead]{
		Content:       []*entity.Lead{{ID: entity.NewID(2)}, {ID: entity.NewID(1)}},
		Size:          20,
		TotalElements: 2,
	}, nil)

	page, err := svc.FindAll(context.Background(), pageable)

	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, entity.NewID(2), page.Content[0].ID)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Zero(t, tx.calls, "reads run without a transaction")
}

func TestLeadServiceFindAllInvalidSort(t *testing.T) {
	repo := new(MockLeadRepository)
	svc := NewLeadService(repo, &passthroughTx{}, nil)

	repo.On("FindAll", mock.Anything, mock.Anything).Return(entity.Page[*entity.Lead]{}, entity.ErrInvalidSort)

	_, err := svc.FindAll(context.Background(), entity.Pageable{})
	assert.ErrorIs(t, err, entity.ErrInvalidSort)
	var te *TechnicalError
	assert.False(t, errors.As(err, &te))
}

func TestLeadServiceDelete(t *testing.T) {
	repo := new(MockLeadRepository)
	pub := new(MockPublisher)
	svc := NewLeadService(repo, &passthroughTx{}, pub)

	repo.On("DeleteByID", mock.Anything, int64(7)).Return(nil)
	pub.On("PublishEntityEvent", mock.Anything, eventMatching("lead", queue.ActionDeleted, 7)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 7))
	pub.AssertExpectations(t)
}

func TestLeadServiceDeleteFailureSkipsEvent(t *testing.T) {
	repo := new(MockLeadRepository)
	pub := new(MockPublisher)
	svc := NewLeadService(repo, &passthroughTx{}, pub)

	repo.On("DeleteByID", mock.Anything, int64(7)).Return(errors.New("fk violation"))

	err := svc.Delete(context.Background(), 7)

	var te *TechnicalError
	assert.ErrorAs(t, err, &te)
	pub.AssertNotCalled(t, "PublishEntityEvent", mock.Anything, mock.Anything)
}
