package entity

import "context"

// FindByID implementations return ErrNotFound when no row matches.
type LeadRepositoryInterface interface {
	Save(ctx context.Context, lead *Lead) (*Lead, error)
	FindByID(ctx context.Context, id int64) (*Lead, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindAll(ctx context.Context, pageable Pageable) (Page[*Lead], error)
	DeleteByID(ctx context.Context, id int64) error
}

type InterestRepositoryInterface interface {
	Save(ctx context.Context, interest *Interest) (*Interest, error)
	FindByID(ctx context.Context, id int64) (*Interest, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindAll(ctx context.Context, pageable Pageable) (Page[*Interest], error)
	DeleteByID(ctx context.Context, id int64) error
}
