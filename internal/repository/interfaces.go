package repository

import (
	"context"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/domain"
)

// ListFilter narrows a listing. Equality fields are pushed to the store as a
// server-side filter and combined with AND; Search is applied after retrieval
// as a case-insensitive substring match over title, organizer, location and
// city. Zero values mean "no constraint".
type ListFilter struct {
	Status   domain.Status
	Category string
	UserID   string
	Search   string
}

// Statistics is the aggregate view over the full event table.
type Statistics struct {
	TotalEvents      int     `json:"totalEvents"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalTicketsSold int     `json:"totalTicketsSold"`
	ActiveEvents     int     `json:"activeEvents"`
	PendingEvents    int     `json:"pendingEvents"`
}

// EventRepository defines the interface for event storage operations
type EventRepository interface {
	// Create persists a fully populated event. The caller assigns the ID
	// and timestamps before calling.
	Create(ctx context.Context, event *domain.Event) error

	// GetByID returns the event or domain.ErrNotFound.
	GetByID(ctx context.Context, eventID string) (*domain.Event, error)

	// List returns matching events sorted by createdAt descending.
	List(ctx context.Context, filter ListFilter) ([]*domain.Event, error)

	// Update applies the patch to an existing event, refreshes updatedAt and
	// returns the post-update record, or domain.ErrNotFound.
	Update(ctx context.Context, eventID string, patch domain.EventPatch) (*domain.Event, error)

	// Delete removes the event, or returns domain.ErrNotFound.
	Delete(ctx context.Context, eventID string) error

	// BatchUpdateStatus applies the status to each ID concurrently. Batches
	// are not atomic: on error some subset may already have been applied.
	BatchUpdateStatus(ctx context.Context, eventIDs []string, status domain.Status) error

	// BatchDelete removes each ID concurrently, with the same
	// partial-failure semantics as BatchUpdateStatus.
	BatchDelete(ctx context.Context, eventIDs []string) error

	// Statistics reduces the full listing into aggregate counters.
	Statistics(ctx context.Context) (*Statistics, error)

	// Ping checks if the backing store is reachable.
	Ping(ctx context.Context) error
}
