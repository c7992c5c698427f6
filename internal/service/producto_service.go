package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	ErrProductoDuplicado = errors.New("ya existe un producto con ese nombre o código de barras")
	ErrProductoEnUso     = errors.New("el producto tiene ventas o lotes asociados y no puede eliminarse")
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	// PrecioPorBarcode is the scan-screen lookup, cache-aside over Redis.
	PrecioPorBarcode(ctx context.Context, barcode string) (*dto.PrecioResponse, error)
}

type productoService struct {
	repo      repository.ProductoRepository
	marcaRepo repository.MarcaRepository
	catRepo   repository.CategoriaRepository
	ventaRepo repository.VentaRepository
	loteRepo  repository.LoteRepository
	rdb       *redis.Client
}

func NewProductoService(
	repo repository.ProductoRepository,
	marcaRepo repository.MarcaRepository,
	catRepo repository.CategoriaRepository,
	ventaRepo repository.VentaRepository,
	loteRepo repository.LoteRepository,
	rdb *redis.Client,
) ProductoService {
	return &productoService{
		repo:      repo,
		marcaRepo: marcaRepo,
		catRepo:   catRepo,
		ventaRepo: ventaRepo,
		loteRepo:  loteRepo,
		rdb:       rdb,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	normalizado := NormalizarNombre(req.Nombre)
	if normalizado == "" {
		return nil, errors.New("el nombre no puede estar vacío")
	}
	if _, err := s.repo.FindByNombreNormalizado(ctx, normalizado); err == nil {
		return nil, ErrProductoDuplicado
	}
	if _, err := s.repo.FindByBarcode(ctx, req.CodigoBarras); err == nil {
		return nil, ErrProductoDuplicado
	}

	marcaID, err := uuid.Parse(req.MarcaID)
	if err != nil {
		return nil, errors.New("marca_id inválido")
	}
	marca, err := s.marcaRepo.FindByID(ctx, marcaID)
	if err != nil {
		return nil, errors.New("marca no encontrada")
	}
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, errors.New("categoria_id inválido")
	}
	categoria, err := s.catRepo.FindByID(ctx, categoriaID)
	if err != nil {
		return nil, errors.New("categoría no encontrada")
	}

	p := &model.Producto{
		Nombre:            req.Nombre,
		NombreNormalizado: normalizado,
		CodigoBarras:      req.CodigoBarras,
		MarcaID:           marcaID,
		CategoriaID:       categoriaID,
		PrecioVenta:       req.PrecioVenta,
		StockActual:       0,
		Activo:            true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Marca = marca
	p.Categoria = categoria
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}

	if req.Nombre != nil {
		normalizado := NormalizarNombre(*req.Nombre)
		if normalizado == "" {
			return nil, errors.New("el nombre no puede estar vacío")
		}
		if existente, err := s.repo.FindByNombreNormalizado(ctx, normalizado); err == nil && existente.ID != p.ID {
			return nil, ErrProductoDuplicado
		}
		p.Nombre = *req.Nombre
		p.NombreNormalizado = normalizado
	}
	if req.CodigoBarras != nil {
		if existente, err := s.repo.FindByBarcode(ctx, *req.CodigoBarras); err == nil && existente.ID != p.ID {
			return nil, ErrProductoDuplicado
		}
		s.invalidarPrecio(ctx, p.CodigoBarras)
		p.CodigoBarras = *req.CodigoBarras
	}
	if req.MarcaID != nil {
		marcaID, err := uuid.Parse(*req.MarcaID)
		if err != nil {
			return nil, errors.New("marca_id inválido")
		}
		if _, err := s.marcaRepo.FindByID(ctx, marcaID); err != nil {
			return nil, errors.New("marca no encontrada")
		}
		p.MarcaID = marcaID
		p.Marca = nil
	}
	if req.CategoriaID != nil {
		categoriaID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, errors.New("categoria_id inválido")
		}
		if _, err := s.catRepo.FindByID(ctx, categoriaID); err != nil {
			return nil, errors.New("categoría no encontrada")
		}
		p.CategoriaID = categoriaID
		p.Categoria = nil
	}
	if req.PrecioVenta != nil {
		if req.PrecioVenta.IsNegative() {
			return nil, errors.New("el precio de venta no puede ser negativo")
		}
		p.PrecioVenta = *req.PrecioVenta
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarPrecio(ctx, p.CodigoBarras)
	return s.ObtenerPorID(ctx, p.ID)
}

// Eliminar removes a product only when nothing references it: sales keep
// their snapshots regardless, but lot lines and sale lines pointing at the
// product block deletion so history stays navigable.
func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("producto no encontrado")
	}
	if n, err := s.ventaRepo.CountItemsPorProducto(ctx, id); err != nil {
		return err
	} else if n > 0 {
		return ErrProductoEnUso
	}
	if n, err := s.loteRepo.CountItemsPorProducto(ctx, id); err != nil {
		return err
	} else if n > 0 {
		return ErrProductoEnUso
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarPrecio(ctx, p.CodigoBarras)
	return nil
}

func (s *productoService) PrecioPorBarcode(ctx context.Context, barcode string) (*dto.PrecioResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, precioCacheKey(barcode)).Result(); err == nil {
			var resp dto.PrecioResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("no existe un producto activo con código %s", barcode)
	}
	resp := &dto.PrecioResponse{
		ProductoID:      p.ID.String(),
		Nombre:          p.Nombre,
		CodigoBarras:    p.CodigoBarras,
		PrecioVenta:     p.PrecioVenta,
		StockDisponible: p.StockActual,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, precioCacheKey(barcode), payload, precioCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("barcode", barcode).Msg("no se pudo cachear el precio")
			}
		}
	}
	return resp, nil
}

func (s *productoService) invalidarPrecio(ctx context.Context, barcode string) {
	if s.rdb == nil || barcode == "" {
		return
	}
	_ = s.rdb.Del(ctx, precioCacheKey(barcode)).Err()
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:           p.ID.String(),
		Nombre:       p.Nombre,
		CodigoBarras: p.CodigoBarras,
		MarcaID:      p.MarcaID.String(),
		CategoriaID:  p.CategoriaID.String(),
		PrecioVenta:  p.PrecioVenta,
		StockActual:  p.StockActual,
		Activo:       p.Activo,
	}
	if p.Marca != nil {
		resp.Marca = p.Marca.Nombre
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Nombre
	}
	return resp
}
