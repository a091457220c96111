package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/domain"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/dto"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/identity"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/metrics"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/repository"
)

// EventService represents event service
type EventService struct {
	repository repository.EventRepository
	log        *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(repo repository.EventRepository, log *zap.Logger) *EventService {
	return &EventService{
		repository: repo,
		log:        log,
	}
}

// newEventID generates a unique event ID without coordination:
// a millisecond timestamp plus a random suffix.
func newEventID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("evt_%d_%s", time.Now().UnixMilli(), suffix)
}

// CreateEvent validates the request, assigns identity and audit fields and
// persists the record
func (s *EventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest, caller *identity.Identity) (*domain.Event, error) {
	if _, err := time.Parse(time.RFC3339, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be RFC3339: %s", domain.ErrValidation, req.Date)
	}

	if req.TicketsSold > req.TotalTickets {
		return nil, fmt.Errorf("%w: ticketsSold (%d) exceeds totalTickets (%d)",
			domain.ErrValidation, req.TicketsSold, req.TotalTickets)
	}

	status := domain.Status(req.Status)
	if status == "" {
		status = domain.StatusPending
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = domain.PlaceholderImageURL
	}

	organizer := req.Organizer
	if organizer == "" {
		organizer = caller.Email
	}

	now := time.Now().UTC()
	event := &domain.Event{
		EventID:        newEventID(),
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Date:           req.Date,
		Location:       req.Location,
		City:           req.City,
		UserID:         caller.SubjectID,
		Organizer:      organizer,
		OrganizerEmail: caller.Email,
		TicketsSold:    req.TicketsSold,
		TotalTickets:   req.TotalTickets,
		Revenue:        req.Revenue,
		Status:         status,
		ImageURL:       imageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repository.Create(ctx, event); err != nil {
		metrics.StoreErrors.WithLabelValues("create").Inc()
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	metrics.EventsCreated.Inc()
	s.log.Info("Event created",
		zap.String("event_id", event.EventID),
		zap.String("user_id", event.UserID),
		zap.String("status", string(event.Status)))

	return event, nil
}

// GetEvent returns a single event by ID
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.repository.GetByID(ctx, eventID)
}

// ListEvents returns events matching the filters, newest first
func (s *EventService) ListEvents(ctx context.Context, req *dto.ListEventsRequest) ([]*domain.Event, error) {
	return s.repository.List(ctx, repository.ListFilter{
		Status:   domain.Status(req.Status),
		Category: req.Category,
		UserID:   req.UserID,
		Search:   req.Search,
	})
}

// UpdateEvent applies a partial update after validating the capacity
// invariant against the record's current state
func (s *EventService) UpdateEvent(ctx context.Context, eventID string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	if req.Date != nil {
		if _, err := time.Parse(time.RFC3339, *req.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be RFC3339: %s", domain.ErrValidation, *req.Date)
		}
	}

	if req.TicketsSold != nil || req.TotalTickets != nil {
		current, err := s.repository.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}

		sold := current.TicketsSold
		total := current.TotalTickets
		if req.TicketsSold != nil {
			sold = *req.TicketsSold
		}
		if req.TotalTickets != nil {
			total = *req.TotalTickets
		}
		if sold > total {
			return nil, fmt.Errorf("%w: ticketsSold (%d) exceeds totalTickets (%d)",
				domain.ErrValidation, sold, total)
		}
	}

	event, err := s.repository.Update(ctx, eventID, patchFromRequest(req))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			metrics.StoreErrors.WithLabelValues("update").Inc()
		}
		return nil, err
	}

	metrics.EventsUpdated.Inc()
	s.log.Info("Event updated", zap.String("event_id", eventID))

	return event, nil
}

// DeleteEvent removes a single event
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	if err := s.repository.Delete(ctx, eventID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			metrics.StoreErrors.WithLabelValues("delete").Inc()
		}
		return err
	}

	metrics.EventsDeleted.Inc()
	s.log.Info("Event deleted", zap.String("event_id", eventID))
	return nil
}

// BatchUpdateStatus applies the status to each ID. Not atomic: on failure
// some updates may already have been applied.
func (s *EventService) BatchUpdateStatus(ctx context.Context, eventIDs []string, status string) error {
	target := domain.Status(status)
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	if err := s.repository.BatchUpdateStatus(ctx, eventIDs, target); err != nil {
		metrics.StoreErrors.WithLabelValues("batch_update_status").Inc()
		return err
	}

	s.log.Info("Batch status update applied",
		zap.Int("event_count", len(eventIDs)),
		zap.String("status", status))
	return nil
}

// BatchDeleteEvents removes each ID, with the same partial-failure semantics
// as BatchUpdateStatus
func (s *EventService) BatchDeleteEvents(ctx context.Context, eventIDs []string) error {
	if err := s.repository.BatchDelete(ctx, eventIDs); err != nil {
		metrics.StoreErrors.WithLabelValues("batch_delete").Inc()
		return err
	}

	s.log.Info("Batch delete applied", zap.Int("event_count", len(eventIDs)))
	return nil
}

// GetStatistics returns aggregate counters over the full table
func (s *EventService) GetStatistics(ctx context.Context) (*repository.Statistics, error) {
	stats, err := s.repository.Statistics(ctx)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("statistics").Inc()
		return nil, err
	}
	return stats, nil
}

// Ping checks if the backing store is reachable
func (s *EventService) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}

func patchFromRequest(req *dto.UpdateEventRequest) domain.EventPatch {
	patch := domain.EventPatch{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Date:         req.Date,
		Location:     req.Location,
		City:         req.City,
		TicketsSold:  req.TicketsSold,
		TotalTickets: req.TotalTickets,
		Revenue:      req.Revenue,
		ImageURL:     req.ImageURL,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}
	return patch
}
