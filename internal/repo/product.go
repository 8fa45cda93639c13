package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/affiliate_store/internal/models"
)

type SortOrder string

const (
	SortLatest    SortOrder = "latest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case "":
		return SortLatest, true
	case SortLatest, SortPriceLow, SortPriceHigh, SortRating:
		return SortOrder(s), true
	}
	return "", false
}

// orderBy always ends with id so that pages never overlap on ties.
func (s SortOrder) orderBy() []string {
	switch s {
	case SortPriceLow:
		return []string{"price ASC", "id ASC"}
	case SortPriceHigh:
		return []string{"price DESC", "id DESC"}
	case SortRating:
		return []string{"rating DESC", "id DESC"}
	default:
		return []string{"created_at DESC", "id DESC"}
	}
}

type ProductQuery struct {
	Search    string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	IsActive  *bool
	Sort      SortOrder
	Offset    int
	Limit     int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (q ProductQuery) scope(tx *gorm.DB) *gorm.DB {
	if q.IsActive != nil {
		tx = tx.Where("is_active = ?", *q.IsActive)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Search)) + "%"
		tx = tx.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}
	if q.MinRating != nil {
		tx = tx.Where("rating >= ?", *q.MinRating)
	}
	return tx
}

// ListProducts counts every match before applying offset and limit. An
// offset past the last match skips the page query.
func (r *GormRepo) ListProducts(ctx context.Context, q ProductQuery) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Scopes(q.scope).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, q.Limit)
	if int64(q.Offset) >= total {
		return total, items, nil
	}
	tx := r.DB.WithContext(ctx).Model(&models.Product{}).Scopes(q.scope)
	for _, o := range q.Sort.orderBy() {
		tx = tx.Order(o)
	}
	if err := tx.Offset(q.Offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Product, error) {
	var product models.Product
	tx := r.DB.WithContext(ctx).Where("id = ?", id)
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if err := tx.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// RelatedProducts returns active products sharing p's category, newest first.
func (r *GormRepo) RelatedProducts(ctx context.Context, p *models.Product, limit int) ([]models.Product, error) {
	items := make([]models.Product, 0, limit)
	err := r.DB.WithContext(ctx).
		Where("category = ? AND is_active = ? AND id <> ?", p.Category, true, p.ID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

// UpdateProduct loads the row, lets apply mutate it and saves every column.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uuid.UUID, apply func(*models.Product)) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&prod).Error; err != nil {
			return err
		}
		apply(&prod)
		return tx.Save(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleActive flips is_active in place and leaves every other column,
// updated_at included, untouched.
func (r *GormRepo) ToggleActive(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProduct(ctx, id, false)
}

func (r *GormRepo) CountProducts(ctx context.Context, isActive *bool) (int64, error) {
	var n int64
	tx := r.DB.WithContext(ctx).Model(&models.Product{})
	if isActive != nil {
		tx = tx.Where("is_active = ?", *isActive)
	}
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
