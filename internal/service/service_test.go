package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/affiliate_store/internal/db/dbtest"
	"github.com/Skotchmaster/affiliate_store/internal/events"
	"github.com/Skotchmaster/affiliate_store/internal/models"
	"github.com/Skotchmaster/affiliate_store/internal/repo"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic, _ string, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingIndex struct {
	mu      sync.Mutex
	indexed map[uuid.UUID]bool
	deleted []uuid.UUID
}

func (i *recordingIndex) IndexProduct(_ context.Context, p *models.Product) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.indexed == nil {
		i.indexed = map[uuid.UUID]bool{}
	}
	i.indexed[p.ID] = p.IsActive
	return nil
}

func (i *recordingIndex) DeleteProduct(_ context.Context, id uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.deleted = append(i.deleted, id)
	return nil
}

type testEnv struct {
	Repo     *repo.GormRepo
	Catalog  *CatalogService
	Category *CategoryService
	Events   *recordingPublisher
	Index    *recordingIndex
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := &repo.GormRepo{DB: dbtest.Open(t)}
	pub := &recordingPublisher{}
	idx := &recordingIndex{}
	return &testEnv{
		Repo:     r,
		Catalog:  &CatalogService{Repo: r, Events: pub, Index: idx},
		Category: &CategoryService{Repo: r, Events: pub},
		Events:   pub,
		Index:    idx,
	}
}

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seed stores products whose creation times increase with their position.
func (env *testEnv) seed(t *testing.T, products ...models.Product) []models.Product {
	t.Helper()
	out := make([]models.Product, 0, len(products))
	for i, p := range products {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = baseTime.Add(time.Duration(i) * time.Hour)
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		if p.Description == "" {
			p.Description = p.Title + " description"
		}
		if p.Category == "" {
			p.Category = "Electronics"
		}
		if p.Rating == 0 {
			p.Rating = 4
		}
		if p.AffiliateLink == "" {
			p.AffiliateLink = "https://example.com/" + p.Title
		}
		require.NoError(t, env.Repo.CreateProduct(context.Background(), &p))
		out = append(out, p)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func validRequest() transport.ProductRequest {
	return transport.ProductRequest{
		Title:         "Smart Fitness Watch",
		Description:   "Tracks everything",
		Price:         ptr(299.99),
		Category:      "Fitness",
		Rating:        ptr(4.8),
		AffiliateLink: "https://example.com/smartwatch",
	}
}
