package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrLoteActivo = errors.New("el lote todavía tiene unidades sin consumir y no puede eliminarse")

type LoteService interface {
	CrearLote(ctx context.Context, req dto.CrearLoteRequest) (*dto.LoteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error)
	ListarLotes(ctx context.Context) ([]dto.LoteResponse, error)
	EliminarLote(ctx context.Context, id uuid.UUID) error
}

type loteService struct {
	repo           repository.LoteRepository
	productoRepo   repository.ProductoRepository
	proveedorRepo  repository.ProveedorRepository
	movimientoRepo repository.MovimientoStockRepository
	loc            *time.Location
}

func NewLoteService(
	repo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	movimientoRepo repository.MovimientoStockRepository,
	loc *time.Location,
) LoteService {
	return &loteService{
		repo:           repo,
		productoRepo:   productoRepo,
		proveedorRepo:  proveedorRepo,
		movimientoRepo: movimientoRepo,
		loc:            loc,
	}
}

// CrearLote validates every line before touching anything: either the whole
// delivery goes in or none of it does. Stock increments, lot lines and the
// movimiento journal all land in one transaction.
func (s *loteService) CrearLote(ctx context.Context, req dto.CrearLoteRequest) (*dto.LoteResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, errors.New("proveedor_id inválido")
	}
	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	recibidoEn, err := time.ParseInLocation("2006-01-02", req.RecibidoEn, s.loc)
	if err != nil {
		return nil, errors.New("recibido_en debe tener formato YYYY-MM-DD")
	}

	type lineaResuelta struct {
		producto *model.Producto
		cantidad int
		precio   decimal.Decimal
		costo    decimal.Decimal
	}
	lineas := make([]lineaResuelta, 0, len(req.Items))
	cantidadTotal := 0
	costoTotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %s", item.ProductoID)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		costo := item.PrecioCompra.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		lineas = append(lineas, lineaResuelta{
			producto: p,
			cantidad: item.Cantidad,
			precio:   item.PrecioCompra,
			costo:    costo,
		})
		cantidadTotal += item.Cantidad
		costoTotal = costoTotal.Add(costo)
	}

	var lote model.Lote
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		lote = model.Lote{
			ProveedorID:   proveedorID,
			RecibidoEn:    recibidoEn,
			CantidadTotal: cantidadTotal,
			CostoTotal:    costoTotal,
		}
		for _, l := range lineas {
			lote.Items = append(lote.Items, model.LoteItem{
				ProductoID:       l.producto.ID,
				Cantidad:         l.cantidad,
				PrecioCompra:     l.precio,
				CostoTotal:       l.costo,
				CantidadRestante: l.cantidad,
			})
		}
		if err := s.repo.Create(ctx, tx, &lote); err != nil {
			return err
		}

		for _, l := range lineas {
			if err := s.productoRepo.IncrementarStockTx(tx, l.producto.ID, l.cantidad); err != nil {
				return fmt.Errorf("error incrementando stock de %s: %w", l.producto.Nombre, err)
			}
			mov := &model.MovimientoStock{
				ProductoID:    l.producto.ID,
				Tipo:          "ingreso_lote",
				Cantidad:      l.cantidad,
				StockAnterior: l.producto.StockActual,
				StockNuevo:    l.producto.StockActual + l.cantidad,
				Motivo:        "Ingreso de lote",
				ReferenciaID:  &lote.ID,
			}
			if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	lote.Proveedor = proveedor
	for i := range lote.Items {
		lote.Items[i].Producto = lineas[i].producto
	}
	return loteToResponse(&lote), nil
}

func (s *loteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("lote no encontrado")
	}
	return loteToResponse(lote), nil
}

func (s *loteService) ListarLotes(ctx context.Context) ([]dto.LoteResponse, error) {
	lotes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		resp = append(resp, *loteToResponse(&lotes[i]))
	}
	return resp, nil
}

// EliminarLote only allows removing fully consumed (inactive) lots. Deleting a
// lot never rewinds product stock — those units were already sold.
func (s *loteService) EliminarLote(ctx context.Context, id uuid.UUID) error {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("lote no encontrado")
	}
	for _, item := range lote.Items {
		if item.CantidadRestante > 0 {
			return ErrLoteActivo
		}
	}
	return s.repo.Delete(ctx, id)
}

func loteToResponse(l *model.Lote) *dto.LoteResponse {
	items := make([]dto.ItemLoteResponse, 0, len(l.Items))
	activo := false
	for _, item := range l.Items {
		ir := dto.ItemLoteResponse{
			ProductoID:       item.ProductoID.String(),
			Cantidad:         item.Cantidad,
			PrecioCompra:     item.PrecioCompra,
			CostoTotal:       item.CostoTotal,
			CantidadRestante: item.CantidadRestante,
		}
		if item.Producto != nil {
			ir.Producto = item.Producto.Nombre
		}
		if item.CantidadRestante > 0 {
			activo = true
		}
		items = append(items, ir)
	}
	resp := &dto.LoteResponse{
		ID:            l.ID.String(),
		ProveedorID:   l.ProveedorID.String(),
		RecibidoEn:    l.RecibidoEn.Format("2006-01-02"),
		Items:         items,
		CantidadTotal: l.CantidadTotal,
		CostoTotal:    l.CostoTotal,
		Activo:        activo,
	}
	if l.Proveedor != nil {
		resp.Proveedor = l.Proveedor.RazonSocial
	}
	return resp
}
