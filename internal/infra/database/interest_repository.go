package database

import (
	"context"
	"fmt"

	"github.com/xavierca1/lead-management/internal/entity"
	"gorm.io/gorm"
)

var interestColumns = map[string]string{
	"id":          "id",
	"category":    "category",
	"brand":       "brand",
	"articleId":   "article_id",
	"orderId":     "order_id",
	"isPurchased": "is_purchased",
	"createdAt":   "created_at",
	"createdBy":   "created_by",
	"updatedAt":   "updated_at",
	"updatedBy":   "updated_by",
	"lead":        "lead_id",
	"lead.id":     "lead_id",
}

type InterestRepository struct {
	repo Repository[interestRecord]
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{repo: newRepository[interestRecord](db, interestColumns)}
}

func (r *InterestRepository) Save(ctx context.Context, interest *entity.Interest) (*entity.Interest, error) {
	rec := newInterestRecord(interest)
	if err := r.repo.save(ctx, rec, rec.ID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("save interest: %w", err)
	}
	interest.ID = entity.NewID(rec.ID)
	return interest, nil
}

func (r *InterestRepository) FindByID(ctx context.Context, id int64) (*entity.Interest, error) {
	rec, err := r.repo.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.toEntity(), nil
}

func (r *InterestRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.repo.existsByID(ctx, id)
}

func (r *InterestRepository) FindAll(ctx context.Context, pageable entity.Pageable) (entity.Page[*entity.Interest], error) {
	rows, total, p, err := r.repo.findAll(ctx, pageable)
	if err != nil {
		return entity.Page[*entity.Interest]{}, err
	}

	page := entity.Page[*entity.Interest]{
		Content:       make([]*entity.Interest, 0, len(rows)),
		Number:        p.Page,
		Size:          p.Size,
		TotalElements: total,
	}
	for n := range rows {
		page.Content = append(page.Content, rows[n].toEntity())
	}
	return page, nil
}

func (r *InterestRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.repo.deleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete interest %d: %w", id, err)
	}
	return nil
}
