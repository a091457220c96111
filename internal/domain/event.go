package domain

import "time"

// Status is the lifecycle state of an event. Transitions are caller-driven;
// the store accepts any value-to-value transition.
type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusSuspended Status = "suspended"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusCompleted, StatusCancelled, StatusSuspended:
		return true
	}
	return false
}

// PlaceholderImageURL is used for events without an uploaded image.
const PlaceholderImageURL = "https://placehold.co/640x360?text=event"

// Event represents an event record stored in DynamoDB
type Event struct {
	EventID        string    `json:"eventId" dynamodbav:"eventId"`
	Title          string    `json:"title" dynamodbav:"title"`
	Description    string    `json:"description" dynamodbav:"description"`
	Category       string    `json:"category" dynamodbav:"category"`
	Date           string    `json:"date" dynamodbav:"date"`
	Location       string    `json:"location" dynamodbav:"location"`
	City           string    `json:"city" dynamodbav:"city"`
	UserID         string    `json:"userId" dynamodbav:"userId"`
	Organizer      string    `json:"organizer" dynamodbav:"organizer"`
	OrganizerEmail string    `json:"organizerEmail" dynamodbav:"organizerEmail"`
	TicketsSold    int       `json:"ticketsSold" dynamodbav:"ticketsSold"`
	TotalTickets   int       `json:"totalTickets" dynamodbav:"totalTickets"`
	Revenue        float64   `json:"revenue" dynamodbav:"revenue"`
	Status         Status    `json:"status" dynamodbav:"status"`
	ImageURL       string    `json:"imageUrl" dynamodbav:"imageUrl"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// EventPatch carries the fields a partial update may touch. Nil means
// "leave unchanged". Identity, ownership and audit fields are deliberately
// absent so an update can never overwrite them.
type EventPatch struct {
	Title        *string
	Description  *string
	Category     *string
	Date         *string
	Location     *string
	City         *string
	TicketsSold  *int
	TotalTickets *int
	Revenue      *float64
	Status       *Status
	ImageURL     *string
}
