package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/infra"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioEmail string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	EliminarVenta(ctx context.Context, id uuid.UUID) error
	GenerarTicket(ctx context.Context, id uuid.UUID, negocio, storagePath string) (string, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	productoRepo   repository.ProductoRepository
	loteRepo       repository.LoteRepository
	movimientoRepo repository.MovimientoStockRepository
	rdb            *redis.Client
	loc            *time.Location
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	loteRepo repository.LoteRepository,
	movimientoRepo repository.MovimientoStockRepository,
	rdb *redis.Client,
	loc *time.Location,
) VentaService {
	return &ventaService{
		repo:           repo,
		productoRepo:   productoRepo,
		loteRepo:       loteRepo,
		movimientoRepo: movimientoRepo,
		rdb:            rdb,
		loc:            loc,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Settlement is one logical transaction:
//   1. Deduplicate by clave_idempotencia (retried checkout returns the
//      original sale, no second decrement)
//   2. Resolve products and compute line totals (pre-flight, outside TX)
//   3. BEGIN TX: per product, atomic clamped stock decrement + FIFO lot
//      consumption + movimiento journal; then create venta + items
//   4. COMMIT, then best-effort cache invalidation
//
// Oversell (requested > on hand) clamps stock at zero and flags the sale with
// conflicto_stock instead of rejecting it — the register must never block a
// customer standing at the counter over a count that is already wrong.

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioEmail string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	// 1. Deduplicate retried checkout
	if req.ClaveIdempotencia != nil {
		if existing, err := s.repo.FindByClaveIdempotencia(ctx, *req.ClaveIdempotencia); err == nil {
			return ventaToResponse(existing), nil
		}
	}

	// 2. Resolve products and calculate lines (pre-flight, outside TX)
	type resolvedItem struct {
		productoID     uuid.UUID
		nombre         string
		codigoBarras   string
		cantidad       int
		precioUnitario decimal.Decimal
		costoUnitario  decimal.Decimal
		totalLinea     decimal.Decimal
		costoLinea     decimal.Decimal
		gananciaLinea  decimal.Decimal
	}

	var resolved []resolvedItem
	total := decimal.Zero
	costoTotal := decimal.Zero
	totalItems := 0

	// Quantities grouped per product — one decrement per product no matter
	// how many cart lines reference it.
	porProducto := make(map[uuid.UUID]int)
	var ordenProductos []uuid.UUID

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s está inactivo y no puede venderse", p.Nombre)
		}

		cantidad := decimal.NewFromInt(int64(item.Cantidad))
		totalLinea := item.PrecioUnitario.Mul(cantidad)
		costoLinea := item.CostoUnitario.Mul(cantidad)

		resolved = append(resolved, resolvedItem{
			productoID:     pid,
			nombre:         p.Nombre,
			codigoBarras:   p.CodigoBarras,
			cantidad:       item.Cantidad,
			precioUnitario: item.PrecioUnitario,
			costoUnitario:  item.CostoUnitario,
			totalLinea:     totalLinea,
			costoLinea:     costoLinea,
			gananciaLinea:  totalLinea.Sub(costoLinea),
		})
		total = total.Add(totalLinea)
		costoTotal = costoTotal.Add(costoLinea)
		totalItems += item.Cantidad

		if _, visto := porProducto[pid]; !visto {
			ordenProductos = append(ordenProductos, pid)
		}
		porProducto[pid] += item.Cantidad
	}

	// 3. Single transaction: decrements + lot consumption + venta insert
	var venta model.Venta
	conflictoStock := false

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Journal rows are buffered until the venta row exists so every
		// "venta" movement carries its sale id, the same way lot intake
		// references its lote.
		movimientos := make([]*model.MovimientoStock, 0, len(ordenProductos))

		for _, pid := range ordenProductos {
			solicitado := porProducto[pid]

			prodBefore, err := s.productoRepo.FindByIDTx(tx, pid)
			if err != nil {
				return fmt.Errorf("producto %s no encontrado", pid)
			}
			stockAntes := prodBefore.StockActual
			if solicitado > stockAntes {
				conflictoStock = true
			}

			// GREATEST(stock_actual - ?, 0) — clamps in SQL so a concurrent
			// sale can never drive the count negative.
			if err := s.productoRepo.DescontarStockTx(tx, pid, solicitado); err != nil {
				return fmt.Errorf("error descontando stock de %s: %w", prodBefore.Nombre, err)
			}

			if err := s.loteRepo.ConsumirFIFOTx(tx, pid, solicitado); err != nil {
				return fmt.Errorf("error consumiendo lotes de %s: %w", prodBefore.Nombre, err)
			}

			stockNuevo := stockAntes - solicitado
			if stockNuevo < 0 {
				stockNuevo = 0
			}
			movimientos = append(movimientos, &model.MovimientoStock{
				ProductoID:    pid,
				Tipo:          "venta",
				Cantidad:      -solicitado,
				StockAnterior: stockAntes,
				StockNuevo:    stockNuevo,
				Motivo:        "Venta",
			})
		}

		venta = model.Venta{
			Total:             total,
			CostoTotal:        costoTotal,
			GananciaTotal:     total.Sub(costoTotal),
			TotalItems:        totalItems,
			VendidaEn:         time.Now().In(s.loc),
			ConflictoStock:    conflictoStock,
			ClaveIdempotencia: req.ClaveIdempotencia,
			UsuarioEmail:      usuarioEmail,
		}
		for _, r := range resolved {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     r.productoID,
				Nombre:         r.nombre,
				CodigoBarras:   r.codigoBarras,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precioUnitario,
				CostoUnitario:  r.costoUnitario,
				TotalLinea:     r.totalLinea,
				CostoLinea:     r.costoLinea,
				GananciaLinea:  r.gananciaLinea,
			})
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		for _, mov := range movimientos {
			mov.ReferenciaID = &venta.ID
			if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Cache invalidation — best effort, the DB is the source of truth
	s.invalidarCaches(ctx, venta.VendidaEn, resolvedBarcodes(venta.Items))

	return ventaToResponse(&venta), nil
}

func resolvedBarcodes(items []model.VentaItem) []string {
	barcodes := make([]string, 0, len(items))
	for _, it := range items {
		barcodes = append(barcodes, it.CodigoBarras)
	}
	return barcodes
}

func (s *ventaService) invalidarCaches(ctx context.Context, fecha time.Time, barcodes []string) {
	if s.rdb == nil {
		return
	}
	keys := []string{kpiCacheKey(fecha.In(s.loc))}
	for _, b := range barcodes {
		keys = append(keys, precioCacheKey(b))
	}
	_ = s.rdb.Del(ctx, keys...).Err()
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

// ListVentas returns a paginated list of sales for the requested date range.
// Default filter: today's sales, newest first.
func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter, s.loc)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaListItem, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, *ventaToListItem(&v))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// EliminarVenta removes a sale wholesale. Stock is deliberately NOT restored:
// the ledger entry disappears but the units already left the shelf.
func (s *ventaService) EliminarVenta(ctx context.Context, id uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venta no encontrada")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCaches(ctx, venta.VendidaEn, nil)
	return nil
}

func (s *ventaService) GenerarTicket(ctx context.Context, id uuid.UUID, negocio, storagePath string) (string, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("venta no encontrada")
	}
	return infra.GenerateTicketPDF(venta, negocio, storagePath)
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func itemToResponse(item model.VentaItem) dto.ItemVentaResponse {
	return dto.ItemVentaResponse{
		ProductoID:     item.ProductoID.String(),
		Nombre:         item.Nombre,
		CodigoBarras:   item.CodigoBarras,
		Cantidad:       item.Cantidad,
		PrecioUnitario: item.PrecioUnitario,
		CostoUnitario:  item.CostoUnitario,
		TotalLinea:     item.TotalLinea,
		CostoLinea:     item.CostoLinea,
		GananciaLinea:  item.GananciaLinea,
	}
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, itemToResponse(item))
	}
	return &dto.VentaResponse{
		ID:             v.ID.String(),
		Items:          items,
		Total:          v.Total,
		CostoTotal:     v.CostoTotal,
		GananciaTotal:  v.GananciaTotal,
		TotalItems:     v.TotalItems,
		ConflictoStock: v.ConflictoStock,
		VendidaEn:      v.VendidaEn.Format(time.RFC3339),
	}
}

func ventaToListItem(v *model.Venta) *dto.VentaListItem {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	resumen := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, itemToResponse(item))
		resumen = append(resumen, fmt.Sprintf("%s x%d", item.Nombre, item.Cantidad))
	}
	return &dto.VentaListItem{
		ID:            v.ID.String(),
		Productos:     strings.Join(resumen, ", "),
		Items:         items,
		Total:         v.Total,
		GananciaTotal: v.GananciaTotal,
		TotalItems:    v.TotalItems,
		VendidaEn:     v.VendidaEn.Format(time.RFC3339),
	}
}
