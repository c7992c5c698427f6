package repository

import (
	"context"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, l *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	List(ctx context.Context) ([]model.Lote, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountItemsPorProducto(ctx context.Context, productoID uuid.UUID) (int64, error)
	CountPorProveedor(ctx context.Context, proveedorID uuid.UUID) (int64, error)

	// ConsumirFIFOTx walks the product's lot lines oldest-delivery-first and
	// decrements cantidad_restante by up to cantidad, clamping each line at
	// zero. Units beyond total lot coverage are silently ignored — the stock
	// decrement on the product itself is the authoritative count.
	ConsumirFIFOTx(tx *gorm.DB, productoID uuid.UUID, cantidad int) error

	// CostoInventarioRestante is Σ cantidad_restante × precio_compra over all
	// lot lines — the cost value of inventory on hand.
	CostoInventarioRestante(ctx context.Context) (decimal.Decimal, error)

	DB() *gorm.DB
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) DB() *gorm.DB { return r.db }

func (r *loteRepo) Create(ctx context.Context, tx *gorm.DB, l *model.Lote) error {
	return tx.WithContext(ctx).Create(l).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).
		Preload("Proveedor").Preload("Items.Producto").
		First(&l, id).Error
	return &l, err
}

func (r *loteRepo) List(ctx context.Context) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).
		Preload("Proveedor").Preload("Items.Producto").
		Order("recibido_en DESC, created_at DESC").
		Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lote_id = ?", id).Delete(&model.LoteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lote{}, id).Error
	})
}

func (r *loteRepo) CountItemsPorProducto(ctx context.Context, productoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LoteItem{}).Where("producto_id = ?", productoID).Count(&n).Error
	return n, err
}

func (r *loteRepo) CountPorProveedor(ctx context.Context, proveedorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Lote{}).Where("proveedor_id = ?", proveedorID).Count(&n).Error
	return n, err
}

func (r *loteRepo) ConsumirFIFOTx(tx *gorm.DB, productoID uuid.UUID, cantidad int) error {
	var items []model.LoteItem
	err := tx.
		Joins("JOIN lotes ON lotes.id = lote_items.lote_id").
		Where("lote_items.producto_id = ? AND lote_items.cantidad_restante > 0", productoID).
		Order("lotes.recibido_en ASC, lotes.created_at ASC").
		Find(&items).Error
	if err != nil {
		return err
	}

	restante := cantidad
	for i := range items {
		if restante <= 0 {
			break
		}
		take := items[i].CantidadRestante
		if take > restante {
			take = restante
		}
		if err := tx.Model(&model.LoteItem{}).Where("id = ?", items[i].ID).
			Update("cantidad_restante", gorm.Expr("GREATEST(cantidad_restante - ?, 0)", take)).Error; err != nil {
			return err
		}
		restante -= take
	}
	return nil
}

func (r *loteRepo) CostoInventarioRestante(ctx context.Context) (decimal.Decimal, error) {
	var costo decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(cantidad_restante * precio_compra), 0) FROM lote_items").
		Scan(&costo).Error
	return costo, err
}
