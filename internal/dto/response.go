package dto

import (
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"title is required"`
}

// ListEventsResponse represents a listing response
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
	Count  int             `json:"count"`
}

// BatchResponse reports the outcome of a batch operation. A failed batch may
// still have applied some of its per-item mutations.
type BatchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UploadResponse represents the upload authorization contract
type UploadResponse struct {
	Success   bool   `json:"success"`
	URL       string `json:"url,omitempty"`
	Key       string `json:"key,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	PublicURL string `json:"publicUrl,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ObjectData represents listed object metadata
type ObjectData struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
}

// ListObjectsResponse represents an object listing response
type ListObjectsResponse struct {
	Success bool         `json:"success"`
	Objects []ObjectData `json:"objects"`
	Count   int          `json:"count"`
}
