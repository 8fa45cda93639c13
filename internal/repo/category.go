package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/affiliate_store/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	items := make([]models.Category, 0)
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// CategoryClash returns "name" or "slug" when another category, other than
// exclude, already uses that value. It returns "" when both are free.
func (r *GormRepo) CategoryClash(ctx context.Context, name, slug string, exclude uuid.UUID) (string, error) {
	var existing []models.Category
	tx := r.DB.WithContext(ctx).Where("name = ? OR slug = ?", name, slug)
	if exclude != uuid.Nil {
		tx = tx.Where("id <> ?", exclude)
	}
	if err := tx.Limit(2).Find(&existing).Error; err != nil {
		return "", err
	}
	for _, c := range existing {
		if c.Name == name {
			return "name", nil
		}
	}
	if len(existing) > 0 {
		return "slug", nil
	}
	return "", nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) UpdateCategory(ctx context.Context, id uuid.UUID, name, slug string) (*models.Category, error) {
	var cat models.Category
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&cat).Error; err != nil {
			return err
		}
		cat.Name = name
		cat.Slug = slug
		return tx.Save(&cat).Error
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
