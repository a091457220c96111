package service

import (
	"context"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/domain"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/dto"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/identity"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/repository"
)

// EventServicer defines the interface for event service operations
type EventServicer interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest, caller *identity.Identity) (*domain.Event, error)
	GetEvent(ctx context.Context, eventID string) (*domain.Event, error)
	ListEvents(ctx context.Context, req *dto.ListEventsRequest) ([]*domain.Event, error)
	UpdateEvent(ctx context.Context, eventID string, req *dto.UpdateEventRequest) (*domain.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	BatchUpdateStatus(ctx context.Context, eventIDs []string, status string) error
	BatchDeleteEvents(ctx context.Context, eventIDs []string) error
	GetStatistics(ctx context.Context) (*repository.Statistics, error)
	Ping(ctx context.Context) error
}

// AssetServicer defines the interface for asset service operations
type AssetServicer interface {
	IssueUpload(ctx context.Context, req *dto.IssueUploadRequest) *dto.UploadResponse
	ListAssets(ctx context.Context, prefix string) *dto.ListObjectsResponse
	DeleteAsset(ctx context.Context, key string) bool
	TestConnection(ctx context.Context) bool
}
