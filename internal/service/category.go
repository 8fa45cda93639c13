package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/affiliate_store/internal/events"
	"github.com/Skotchmaster/affiliate_store/internal/models"
	"github.com/Skotchmaster/affiliate_store/internal/repo"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
)

type CategoryService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	items, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	cat, err := s.Repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, notFound("category", err)
	}
	return cat, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	name, slug, err := s.prepare(ctx, req, uuid.Nil)
	if err != nil {
		return nil, err
	}

	cat := models.Category{Name: name, Slug: slug}
	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, conflict("name", "Category with this name or slug already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.publish(ctx, events.CategoryCreated, &cat)
	return &cat, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, rawID string, req transport.CategoryRequest) (*models.Category, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	name, slug, err := s.prepare(ctx, req, id)
	if err != nil {
		return nil, err
	}

	cat, err := s.Repo.UpdateCategory(ctx, id, name, slug)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, conflict("name", "Category with this name or slug already exists")
		}
		return nil, notFound("category", err)
	}

	s.publish(ctx, events.CategoryUpdated, cat)
	return cat, nil
}

// DeleteCategory does not touch products that still carry the name.
func (s *CategoryService) DeleteCategory(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return notFound("category", err)
	}

	publish(ctx, s.Events, events.CategoryTopic, id.String(), events.Event{Type: events.CategoryDeleted, CategoryID: id.String()})
	return nil
}

// prepare validates req, derives the slug from the name when none is given
// and checks that neither value is taken by another category.
func (s *CategoryService) prepare(ctx context.Context, req transport.CategoryRequest, self uuid.UUID) (string, string, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateInput(req); err != nil {
		return "", "", err
	}

	slug := Slugify(req.Slug)
	if strings.TrimSpace(req.Slug) == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return "", "", invalid("slug", "slug must contain at least one letter or digit")
	}

	field, err := s.Repo.CategoryClash(ctx, req.Name, slug, self)
	if err != nil {
		return "", "", fmt.Errorf("check category uniqueness: %w", err)
	}
	if field != "" {
		return "", "", conflict(field, "Category with this name or slug already exists")
	}
	return req.Name, slug, nil
}

func (s *CategoryService) publish(ctx context.Context, eventType string, c *models.Category) {
	publish(ctx, s.Events, events.CategoryTopic, c.ID.String(), events.Event{
		Type:       eventType,
		CategoryID: c.ID.String(),
		Title:      c.Name,
		Slug:       c.Slug,
	})
}
