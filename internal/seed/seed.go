// Package seed loads the sample catalog.
package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/affiliate_store/internal/models"
)

type Options struct {
	// Reset removes every product and category before seeding.
	Reset bool
	Now   func() time.Time
}

type Summary struct {
	Categories int
	Products   int
}

// Run inserts the sample categories and products in one transaction.
// Without Reset, categories with a known slug and products with a known
// title are left alone, so running it twice adds nothing.
func Run(ctx context.Context, db *gorm.DB, opts Options) (Summary, error) {
	now := time.Now().UTC()
	if opts.Now != nil {
		now = opts.Now()
	}

	var sum Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Reset {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
				return fmt.Errorf("clear products: %w", err)
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Category{}).Error; err != nil {
				return fmt.Errorf("clear categories: %w", err)
			}
		}

		for _, c := range Categories {
			c := c
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&c)
			if res.Error != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, res.Error)
			}
			sum.Categories += int(res.RowsAffected)
		}

		// Listed order is newest first.
		for i, p := range Products {
			var n int64
			if err := tx.Model(&models.Product{}).Where("title = ?", p.Title).Count(&n).Error; err != nil {
				return fmt.Errorf("check product %q: %w", p.Title, err)
			}
			if n > 0 {
				continue
			}

			p.ImageURLs = append([]string(nil), p.ImageURLs...)
			p.IsActive = true
			p.CreatedAt = now.Add(-time.Duration(i) * time.Minute)
			p.UpdatedAt = p.CreatedAt
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed product %q: %w", p.Title, err)
			}
			sum.Products++
		}
		return nil
	})
	return sum, err
}
