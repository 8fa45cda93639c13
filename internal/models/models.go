package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"           json:"id"`
	Title         string    `gorm:"not null"                       json:"title"`
	Description   string    `gorm:"type:text;not null"             json:"description"`
	Price         float64   `gorm:"not null;index"                 json:"price"`
	Category      string    `gorm:"not null;index"                 json:"category"`
	Rating        float64   `gorm:"not null"                       json:"rating"`
	ImageURLs     []string  `gorm:"type:text;serializer:json"      json:"imageUrls"`
	AffiliateLink string    `gorm:"not null"                       json:"affiliateLink"`
	IsActive      bool      `gorm:"not null;index"                 json:"isActive"`
	CreatedAt     time.Time `gorm:"index"                          json:"createdAt"`
	UpdatedAt     time.Time `                                      json:"updatedAt"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	return nil
}

func (p *Product) AfterFind(*gorm.DB) error {
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	return nil
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	Name      string    `gorm:"uniqueIndex;not null"   json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null"   json:"slug"`
	CreatedAt time.Time `                              json:"createdAt"`
	UpdatedAt time.Time `                              json:"updatedAt"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"   json:"email"`
	PasswordHash string    `gorm:"not null"               json:"-"`
	CreatedAt    time.Time `                              json:"createdAt"`
	UpdatedAt    time.Time `                              json:"updatedAt"`
}

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func All() []any {
	return []any{&Product{}, &Category{}, &Admin{}}
}
