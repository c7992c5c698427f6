package service

import (
	"context"
	"errors"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNombreDuplicado = errors.New("ya existe un registro con ese nombre")
	ErrEnUso           = errors.New("el registro está referenciado y no puede eliminarse")
)

// ── Marcas ────────────────────────────────────────────────────────────────────

type MarcaService interface {
	Crear(ctx context.Context, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error)
	Listar(ctx context.Context) ([]dto.MarcaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type marcaService struct {
	repo         repository.MarcaRepository
	productoRepo repository.ProductoRepository
}

func NewMarcaService(repo repository.MarcaRepository, productoRepo repository.ProductoRepository) MarcaService {
	return &marcaService{repo: repo, productoRepo: productoRepo}
}

func (s *marcaService) Crear(ctx context.Context, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error) {
	normalizado := NormalizarNombre(req.Nombre)
	if normalizado == "" {
		return nil, errors.New("el nombre no puede estar vacío")
	}
	if _, err := s.repo.FindByNombreNormalizado(ctx, normalizado); err == nil {
		return nil, ErrNombreDuplicado
	}
	m := &model.Marca{Nombre: req.Nombre, NombreNormalizado: normalizado}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return &dto.MarcaResponse{ID: m.ID.String(), Nombre: m.Nombre}, nil
}

func (s *marcaService) Listar(ctx context.Context) ([]dto.MarcaResponse, error) {
	marcas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MarcaResponse, 0, len(marcas))
	for _, m := range marcas {
		resp = append(resp, dto.MarcaResponse{ID: m.ID.String(), Nombre: m.Nombre})
	}
	return resp, nil
}

func (s *marcaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("marca no encontrada")
	}
	normalizado := NormalizarNombre(req.Nombre)
	if normalizado == "" {
		return nil, errors.New("el nombre no puede estar vacío")
	}
	if existente, err := s.repo.FindByNombreNormalizado(ctx, normalizado); err == nil && existente.ID != m.ID {
		return nil, ErrNombreDuplicado
	}
	m.Nombre = req.Nombre
	m.NombreNormalizado = normalizado
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return &dto.MarcaResponse{ID: m.ID.String(), Nombre: m.Nombre}, nil
}

func (s *marcaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("marca no encontrada")
	}
	n, err := s.productoRepo.CountPorMarca(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrEnUso
	}
	return s.repo.Delete(ctx, id)
}

// ── Categorías ────────────────────────────────────────────────────────────────

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo         repository.CategoriaRepository
	productoRepo repository.ProductoRepository
}

func NewCategoriaService(repo repository.CategoriaRepository, productoRepo repository.ProductoRepository) CategoriaService {
	return &categoriaService{repo: repo, productoRepo: productoRepo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	normalizado := NormalizarNombre(req.Nombre)
	if normalizado == "" {
		return nil, errors.New("el nombre no puede estar vacío")
	}
	if _, err := s.repo.FindByNombreNormalizado(ctx, normalizado); err == nil {
		return nil, ErrNombreDuplicado
	}
	c := &model.Categoria{Nombre: req.Nombre, NombreNormalizado: normalizado}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre}, nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, 0, len(categorias))
	for _, c := range categorias {
		resp = append(resp, dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre})
	}
	return resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("categoría no encontrada")
	}
	normalizado := NormalizarNombre(req.Nombre)
	if normalizado == "" {
		return nil, errors.New("el nombre no puede estar vacío")
	}
	if existente, err := s.repo.FindByNombreNormalizado(ctx, normalizado); err == nil && existente.ID != c.ID {
		return nil, ErrNombreDuplicado
	}
	c.Nombre = req.Nombre
	c.NombreNormalizado = normalizado
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre}, nil
}

func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("categoría no encontrada")
	}
	n, err := s.productoRepo.CountPorCategoria(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrEnUso
	}
	return s.repo.Delete(ctx, id)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo     repository.ProveedorRepository
	loteRepo repository.LoteRepository
}

func NewProveedorService(repo repository.ProveedorRepository, loteRepo repository.LoteRepository) ProveedorService {
	return &proveedorService{repo: repo, loteRepo: loteRepo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if _, err := s.repo.FindByCUIT(ctx, req.CUIT); err == nil {
		return nil, errors.New("ya existe un proveedor con ese CUIT")
	}
	p := &model.Proveedor{
		RazonSocial: req.RazonSocial,
		CUIT:        req.CUIT,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Direccion:   req.Direccion,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		resp = append(resp, *proveedorToResponse(&proveedores[i]))
	}
	return resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	if existente, err := s.repo.FindByCUIT(ctx, req.CUIT); err == nil && existente.ID != p.ID {
		return nil, errors.New("ya existe un proveedor con ese CUIT")
	}
	p.RazonSocial = req.RazonSocial
	p.CUIT = req.CUIT
	p.Telefono = req.Telefono
	p.Email = req.Email
	p.Direccion = req.Direccion
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("proveedor no encontrado")
	}
	n, err := s.loteRepo.CountPorProveedor(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrEnUso
	}
	return s.repo.Delete(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		CUIT:        p.CUIT,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
	}
}
