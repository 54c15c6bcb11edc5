package kafka

import "time"

type EventType string

const (
	EventTypeOfferCreated EventType = "offerCreated"
	EventTypeOfferUpdated EventType = "offerUpdated"
	EventTypeOfferViewed  EventType = "view"
	EventTypeSearch       EventType = "search"
)

// Event - событие витрины для поискового индекса
type Event struct {
	ProfileID string    `json:"profile_id"`
	Type      EventType `json:"type"`
	OfferID   int64     `json:"offer_id,omitempty"`
	ProductID int64     `json:"product_id,omitempty"`
	CityCodes []string  `json:"city_codes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
