package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/affiliate_store/internal/models"
)

func (r *GormRepo) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpsertAdmin creates the admin or replaces the stored password hash.
func (r *GormRepo) UpsertAdmin(ctx context.Context, email, passwordHash string) (*models.Admin, error) {
	var admin models.Admin
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			admin = models.Admin{Email: email, PasswordHash: passwordHash}
			return tx.Create(&admin).Error
		case err != nil:
			return err
		}
		admin.PasswordHash = passwordHash
		return tx.Save(&admin).Error
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
