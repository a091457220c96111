package dto

// CreateEventRequest represents a create event request
type CreateEventRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category" binding:"required"`
	Date         string  `json:"date" binding:"required" example:"2026-09-12T19:00:00Z"`
	Location     string  `json:"location"`
	City         string  `json:"city"`
	Organizer    string  `json:"organizer"`
	TotalTickets int     `json:"totalTickets" binding:"min=0"`
	TicketsSold  int     `json:"ticketsSold" binding:"min=0"`
	Revenue      float64 `json:"revenue" binding:"min=0"`
	Status       string  `json:"status" binding:"omitempty,oneof=active pending completed cancelled suspended"`
	ImageURL     string  `json:"imageUrl"`
}

// UpdateEventRequest represents a partial event update; absent fields are
// left unchanged
type UpdateEventRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Date         *string  `json:"date"`
	Location     *string  `json:"location"`
	City         *string  `json:"city"`
	TotalTickets *int     `json:"totalTickets" binding:"omitempty,min=0"`
	TicketsSold  *int     `json:"ticketsSold" binding:"omitempty,min=0"`
	Revenue      *float64 `json:"revenue" binding:"omitempty,min=0"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active pending completed cancelled suspended"`
	ImageURL     *string  `json:"imageUrl"`
}

// ListEventsRequest represents the listing query parameters
type ListEventsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=active pending completed cancelled suspended"`
	Category string `form:"category"`
	UserID   string `form:"userId"`
	Search   string `form:"search"`
}

// BatchStatusRequest represents a batch status update request
type BatchStatusRequest struct {
	EventIDs []string `json:"eventIds" binding:"required,min=1,max=100"`
	Status   string   `json:"status" binding:"required,oneof=active pending completed cancelled suspended"`
}

// BatchDeleteRequest represents a batch delete request
type BatchDeleteRequest struct {
	EventIDs []string `json:"eventIds" binding:"required,min=1,max=100"`
}

// IssueUploadRequest represents an upload authorization request
type IssueUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Folder      string `json:"folder"`
	ExpiresIn   int    `json:"expiresIn" binding:"omitempty,min=1" example:"3600"`
}
