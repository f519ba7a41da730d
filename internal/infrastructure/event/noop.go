package event

import (
	"context"

	"github.com/stackfood/customers/internal/domain/shared"
)

// NoopPublisher discards all events. It is wired when event publishing is
// disabled in the configuration.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops everything
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish implements shared.EventPublisher
func (p *NoopPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) {}

var _ shared.EventPublisher = (*NoopPublisher)(nil)
