package transport

import (
	"encoding/json"
	"time"

	"github.com/Skotchmaster/affiliate_store/internal/models"
)

// ProductRequest is the body of product create and update. Price and rating
// are pointers so that an explicit zero is distinguishable from absence.
type ProductRequest struct {
	Title         string    `json:"title"         validate:"required"`
	Description   string    `json:"description"   validate:"required"`
	Price         *float64  `json:"price"         validate:"required,gte=0"`
	Category      string    `json:"category"      validate:"required"`
	Rating        *float64  `json:"rating"        validate:"required,gte=1,lte=5"`
	ImageURLs     ImageList `json:"imageUrls"`
	AffiliateLink string    `json:"affiliateLink" validate:"required,url"`
	IsActive      *bool     `json:"isActive"`
}

// ImageList decodes a JSON array of strings. Anything else, null included,
// becomes an empty list.
type ImageList []string

func (l *ImageList) UnmarshalJSON(b []byte) error {
	var v []string
	if err := json.Unmarshal(b, &v); err != nil || v == nil {
		*l = ImageList{}
		return nil
	}
	*l = v
	return nil
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ProductPage struct {
	Items      []models.Product `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

type ProductDetail struct {
	Product         models.Product   `json:"product"`
	RelatedProducts []models.Product `json:"relatedProducts"`
}

type CategoryProducts struct {
	Category   models.Category  `json:"category"`
	Items      []models.Product `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionResponse struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Stats struct {
	Products         int64 `json:"products"`
	ActiveProducts   int64 `json:"activeProducts"`
	InactiveProducts int64 `json:"inactiveProducts"`
	Categories       int64 `json:"categories"`
}
