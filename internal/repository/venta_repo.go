package repository

import (
	"context"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	FindByClaveIdempotencia(ctx context.Context, clave string) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter, loc *time.Location) ([]model.Venta, int64, error)
	// ListRango returns every sale with vendida_en in [desde, hasta), items
	// included, oldest first — the read side for reports and exports.
	ListRango(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountItemsPorProducto(ctx context.Context, productoID uuid.UUID) (int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) FindByClaveIdempotencia(ctx context.Context, clave string) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items").Where("clave_idempotencia = ?", clave).First(&v).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter, loc *time.Location) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	desde, hasta := rangoFechas(filter.Desde, filter.Hasta, loc)

	q := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("vendida_en >= ? AND vendida_en < ?", desde, hasta)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("vendida_en DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) ListRango(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).Preload("Items").
		Where("vendida_en >= ? AND vendida_en < ?", desde, hasta).
		Order("vendida_en ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venta_id = ?", id).Delete(&model.VentaItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Venta{}, id).Error
	})
}

func (r *ventaRepo) CountItemsPorProducto(ctx context.Context, productoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VentaItem{}).Where("producto_id = ?", productoID).Count(&n).Error
	return n, err
}

// rangoFechas resolves the [desde, hasta) interval in the business timezone.
// Empty desde means today; empty hasta means the single day of desde.
func rangoFechas(desdeStr, hastaStr string, loc *time.Location) (time.Time, time.Time) {
	now := time.Now().In(loc)
	desde := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if d, err := time.ParseInLocation("2006-01-02", desdeStr, loc); err == nil {
		desde = d
	}
	hasta := desde.AddDate(0, 0, 1)
	if h, err := time.ParseInLocation("2006-01-02", hastaStr, loc); err == nil {
		hasta = h.AddDate(0, 0, 1)
	}
	return desde, hasta
}
