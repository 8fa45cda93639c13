package events

import (
	"context"
	"time"
)

const (
	ProductTopic  = "product_events"
	CategoryTopic = "category_events"

	ProductCreated  = "product_created"
	ProductUpdated  = "product_updated"
	ProductDeleted  = "product_deleted"
	ProductToggled  = "product_toggled"
	CategoryCreated = "category_created"
	CategoryUpdated = "category_updated"
	CategoryDeleted = "category_deleted"
)

type Event struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"productId,omitempty"`
	CategoryID string    `json:"categoryId,omitempty"`
	Title      string    `json:"title,omitempty"`
	Category   string    `json:"category,omitempty"`
	Slug       string    `json:"slug,omitempty"`
	IsActive   *bool     `json:"isActive,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Event) error
	Close() error
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, Event) error { return nil }

func (Nop) Close() error { return nil }
