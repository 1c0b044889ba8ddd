package usecase

import (
	"context"

	"github.com/xavierca1/lead-management/internal/infra/queue"
)

// Transactor runs fn inside one all-or-nothing database transaction. The
// transaction travels in the context handed to fn.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	PublishEntityEvent(ctx context.Context, event queue.EntityEvent) error
}
