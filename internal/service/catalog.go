package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/affiliate_store/internal/events"
	"github.com/Skotchmaster/affiliate_store/internal/logging"
	"github.com/Skotchmaster/affiliate_store/internal/models"
	"github.com/Skotchmaster/affiliate_store/internal/repo"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
	"github.com/Skotchmaster/affiliate_store/internal/util"
)

// AccessMode selects what a caller may see and do. Public callers only ever
// see active products and cannot mutate anything.
type AccessMode int

const (
	Public AccessMode = iota
	Admin
)

const relatedLimit = 4

// ProductFilter is the closed set of listing parameters. IsActive is
// honoured only in Admin mode.
type ProductFilter struct {
	Search    string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	IsActive  *bool
	SortBy    repo.SortOrder
	Page      int
	Limit     int
}

type Indexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Index  Indexer
}

func (s *CatalogService) ListProducts(ctx context.Context, f ProductFilter, mode AccessMode) (*transport.ProductPage, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	offset, limit := util.Calculate(page, f.Limit)

	sort := f.SortBy
	if sort == "" {
		sort = repo.SortLatest
	}

	q := repo.ProductQuery{
		Search:    f.Search,
		Category:  f.Category,
		MinPrice:  f.MinPrice,
		MaxPrice:  f.MaxPrice,
		MinRating: f.MinRating,
		Sort:      sort,
		Offset:    offset,
		Limit:     limit,
	}
	switch mode {
	case Admin:
		q.IsActive = f.IsActive
	default:
		active := true
		q.IsActive = &active
	}

	total, items, err := s.Repo.ListProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &transport.ProductPage{
		Items: items,
		Pagination: transport.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: util.TotalPages(total, limit),
		},
	}, nil
}

// GetProduct hides inactive products from public callers as if they did not
// exist. Related products are always active ones.
func (s *CatalogService) GetProduct(ctx context.Context, rawID string, mode AccessMode) (*transport.ProductDetail, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, id, mode != Admin)
	if err != nil {
		return nil, notFound("product", err)
	}

	related, err := s.Repo.RelatedProducts(ctx, product, relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}

	return &transport.ProductDetail{Product: *product, RelatedProducts: related}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest, mode AccessMode) (*models.Product, error) {
	if mode != Admin {
		return nil, ErrUnauthorized
	}
	req = trimProductRequest(req)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	prod := models.Product{IsActive: true}
	applyProductRequest(&prod, req)

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.afterChange(ctx, events.ProductCreated, &prod)
	return &prod, nil
}

// UpdateProduct replaces every mutable field. An absent isActive keeps the
// stored flag.
func (s *CatalogService) UpdateProduct(ctx context.Context, rawID string, req transport.ProductRequest, mode AccessMode) (*models.Product, error) {
	if mode != Admin {
		return nil, ErrUnauthorized
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	req = trimProductRequest(req)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, func(p *models.Product) {
		applyProductRequest(p, req)
	})
	if err != nil {
		return nil, notFound("product", err)
	}

	s.afterChange(ctx, events.ProductUpdated, prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, rawID string, mode AccessMode) error {
	if mode != Admin {
		return ErrUnauthorized
	}
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound("product", err)
	}

	l := logging.FromContext(ctx)
	s.publish(ctx, events.ProductTopic, id.String(), events.Event{Type: events.ProductDeleted, ProductID: id.String()})
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			l.Warn("search_sync_failed", "op", "delete", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) ToggleActive(ctx context.Context, rawID string, mode AccessMode) (*models.Product, error) {
	if mode != Admin {
		return nil, ErrUnauthorized
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	prod, err := s.Repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, notFound("product", err)
	}

	s.afterChange(ctx, events.ProductToggled, prod)
	return prod, nil
}

func (s *CatalogService) Stats(ctx context.Context) (*transport.Stats, error) {
	total, err := s.Repo.CountProducts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	active := true
	activeCount, err := s.Repo.CountProducts(ctx, &active)
	if err != nil {
		return nil, fmt.Errorf("count active products: %w", err)
	}
	categories, err := s.Repo.CountCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	return &transport.Stats{
		Products:         total,
		ActiveProducts:   activeCount,
		InactiveProducts: total - activeCount,
		Categories:       categories,
	}, nil
}

// trimProductRequest strips surrounding whitespace so that blank text fields
// fail the required checks.
func trimProductRequest(req transport.ProductRequest) transport.ProductRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.AffiliateLink = strings.TrimSpace(req.AffiliateLink)
	return req
}

func applyProductRequest(p *models.Product, req transport.ProductRequest) {
	p.Title = req.Title
	p.Description = req.Description
	p.Price = *req.Price
	p.Category = req.Category
	p.Rating = *req.Rating
	p.AffiliateLink = req.AffiliateLink
	p.ImageURLs = []string(req.ImageURLs)
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

// afterChange publishes the change and refreshes the search document. Both
// are best effort: failures are logged and never surface to the caller.
func (s *CatalogService) afterChange(ctx context.Context, eventType string, p *models.Product) {
	active := p.IsActive
	s.publish(ctx, events.ProductTopic, p.ID.String(), events.Event{
		Type:      eventType,
		ProductID: p.ID.String(),
		Title:     p.Title,
		Category:  p.Category,
		IsActive:  &active,
	})

	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("search_sync_failed", "op", eventType, "product_id", p.ID, "error", err)
		}
	}
}

func (s *CatalogService) publish(ctx context.Context, topic, key string, e events.Event) {
	publish(ctx, s.Events, topic, key, e)
}

func publish(ctx context.Context, p events.Publisher, topic, key string, e events.Event) {
	if p == nil {
		return
	}
	e.OccurredAt = time.Now().UTC()
	if err := p.Publish(ctx, topic, key, e); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", e.Type, "error", err)
	}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("id %q: %w", raw, ErrNotFound)
	}
	return id, nil
}

func notFound(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
