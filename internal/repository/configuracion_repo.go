package repository

import (
	"context"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfiguracionRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.ConfiguracionUsuario, error)
	// Upsert inserts or updates the settings row keyed by email.
	Upsert(ctx context.Context, c *model.ConfiguracionUsuario) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) FindByEmail(ctx context.Context, email string) (*model.ConfiguracionUsuario, error) {
	var c model.ConfiguracionUsuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	return &c, err
}

func (r *configuracionRepo) Upsert(ctx context.Context, c *model.ConfiguracionUsuario) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"objetivo_diario", "updated_at"}),
	}).Create(c).Error
}
