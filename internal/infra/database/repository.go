package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/lead-management/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the generic id-keyed store shared by the lead and interest
// repositories. columns maps sortable DTO properties to column names.
type Repository[R any] struct {
	db      *gorm.DB
	columns map[string]string
}

func newRepository[R any](db *gorm.DB, columns map[string]string) Repository[R] {
	return Repository[R]{db: db, columns: columns}
}

func (r Repository[R]) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

const pgForeignKeyViolation = "23503"

// save inserts when id is zero and replaces every column of the row with that
// id otherwise. A replace never inserts: a missing row is ErrNotFound.
// Associations are never written through.
func (r Repository[R]) save(ctx context.Context, rec *R, id int64) error {
	if id == 0 {
		return r.conn(ctx).Omit(clause.Associations).Create(rec).Error
	}

	res := r.conn(ctx).Model(rec).Select("*").Omit(clause.Associations).Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r Repository[R]) findByID(ctx context.Context, id int64) (*R, error) {
	var rec R
	err := r.conn(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r Repository[R]) existsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.conn(ctx).Model(new(R)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r Repository[R]) findAll(ctx context.Context, pageable entity.Pageable) ([]R, int64, entity.Pageable, error) {
	p := pageable.Normalize()

	order, err := r.orderBy(p.Sort)
	if err != nil {
		return nil, 0, p, err
	}

	var total int64
	if err := r.conn(ctx).Model(new(R)).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}

	var rows []R
	err = r.conn(ctx).
		Order(order).
		Offset(p.Offset()).
		Limit(p.Size).
		Find(&rows).Error
	if err != nil {
		return nil, 0, p, err
	}
	return rows, total, p, nil
}

func (r Repository[R]) deleteByID(ctx context.Context, id int64) error {
	return r.conn(ctx).Where("id = ?", id).Delete(new(R)).Error
}

// orderBy resolves sort properties against the whitelist. id is always the
// last key so pages are stable.
func (r Repository[R]) orderBy(sort []entity.Order) (clause.OrderBy, error) {
	var cols []clause.OrderByColumn
	hasID := false
	for _, o := range sort {
		col, ok := r.columns[o.Property]
		if !ok {
			return clause.OrderBy{}, fmt.Errorf("%w: %q", entity.ErrInvalidSort, o.Property)
		}
		if col == "id" {
			hasID = true
		}
		cols = append(cols, clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   o.Direction == entity.Desc,
		})
	}
	if !hasID {
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return clause.OrderBy{Columns: cols}, nil
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
