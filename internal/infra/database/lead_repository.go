package database

import (
	"context"
	"fmt"

	"github.com/xavierca1/lead-management/internal/entity"
	"gorm.io/gorm"
)

var leadColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"phone":     "phone",
	"createdAt": "created_at",
	"createdBy": "created_by",
	"updatedAt": "updated_at",
	"updatedBy": "updated_by",
}

type LeadRepository struct {
	repo Repository[leadRecord]
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{repo: newRepository[leadRecord](db, leadColumns)}
}

// Save stores the scalar columns and assigns the id on insert. The interest
// collection is owned by the interest rows and is left alone.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	rec := newLeadRecord(lead)
	if err := r.repo.save(ctx, rec, rec.ID); err != nil {
		return nil, fmt.Errorf("save lead: %w", err)
	}
	lead.ID = entity.NewID(rec.ID)
	return lead, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	rec, err := r.repo.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.toEntity(), nil
}

func (r *LeadRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.repo.existsByID(ctx, id)
}

func (r *LeadRepository) FindAll(ctx context.Context, pageable entity.Pageable) (entity.Page[*entity.Lead], error) {
	rows, total, p, err := r.repo.findAll(ctx, pageable)
	if err != nil {
		return entity.Page[*entity.Lead]{}, err
	}

	page := entity.Page[*entity.Lead]{
		Content:       make([]*entity.Lead, 0, len(rows)),
		Number:        p.Page,
		Size:          p.Size,
		TotalElements: total,
	}
	for n := range rows {
		page.Content = append(page.Content, rows[n].toEntity())
	}
	return page, nil
}

// DeleteByID fails with gorm.ErrForeignKeyViolated while interests still
// point at the lead.
func (r *LeadRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.repo.deleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete lead %d: %w", id, err)
	}
	return nil
}
