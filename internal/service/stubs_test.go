package service

// In-memory repository stubs shared by the service tests. DB() returns nil so
// runTx executes the transaction body directly, without a database.

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── ProductoRepository stub ───────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) seed(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.NombreNormalizado == "" {
		p.NombreNormalizado = NormalizarNombre(p.Nombre)
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.seed(p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras == barcode && p.Activo {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *stubProductoRepo) FindByNombreNormalizado(_ context.Context, nombre string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.NombreNormalizado == nombre {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) CountPorMarca(_ context.Context, marcaID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.MarcaID == marcaID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) CountPorCategoria(_ context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.CategoriaID == categoriaID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) ValorInventarioVenta(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.productos {
		if p.Activo && p.StockActual > 0 {
			total = total.Add(p.PrecioVenta.Mul(decimal.NewFromInt(int64(p.StockActual))))
		}
	}
	return total, nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return errNotFound
	}
	p.StockActual -= cantidad
	if p.StockActual < 0 {
		p.StockActual = 0
	}
	return nil
}

func (r *stubProductoRepo) IncrementarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return errNotFound
	}
	p.StockActual += cantidad
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── LoteRepository stub ───────────────────────────────────────────────────────

type stubLoteRepo struct {
	lotes map[uuid.UUID]*model.Lote
}

func newStubLoteRepo() *stubLoteRepo {
	return &stubLoteRepo{lotes: make(map[uuid.UUID]*model.Lote)}
}

func (r *stubLoteRepo) Create(_ context.Context, _ *gorm.DB, l *model.Lote) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = time.Now()
	for i := range l.Items {
		if l.Items[i].ID == uuid.Nil {
			l.Items[i].ID = uuid.New()
		}
		l.Items[i].LoteID = l.ID
	}
	r.lotes[l.ID] = l
	return nil
}

func (r *stubLoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lote, error) {
	l, ok := r.lotes[id]
	if !ok {
		return nil, errNotFound
	}
	return l, nil
}

func (r *stubLoteRepo) List(_ context.Context) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.lotes {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecibidoEn.After(out[j].RecibidoEn) })
	return out, nil
}

func (r *stubLoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.lotes, id)
	return nil
}

func (r *stubLoteRepo) CountItemsPorProducto(_ context.Context, productoID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range r.lotes {
		for _, item := range l.Items {
			if item.ProductoID == productoID {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubLoteRepo) CountPorProveedor(_ context.Context, proveedorID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range r.lotes {
		if l.ProveedorID == proveedorID {
			n++
		}
	}
	return n, nil
}

func (r *stubLoteRepo) ConsumirFIFOTx(_ *gorm.DB, productoID uuid.UUID, cantidad int) error {
	// Oldest delivery first, same ordering the SQL implementation uses.
	var ordenados []*model.Lote
	for _, l := range r.lotes {
		ordenados = append(ordenados, l)
	}
	sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].RecibidoEn.Before(ordenados[j].RecibidoEn) })

	restante := cantidad
	for _, l := range ordenados {
		for i := range l.Items {
			if restante <= 0 {
				return nil
			}
			item := &l.Items[i]
			if item.ProductoID != productoID || item.CantidadRestante <= 0 {
				continue
			}
			take := item.CantidadRestante
			if take > restante {
				take = restante
			}
			item.CantidadRestante -= take
			restante -= take
		}
	}
	return nil
}

func (r *stubLoteRepo) CostoInventarioRestante(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range r.lotes {
		for _, item := range l.Items {
			total = total.Add(item.PrecioCompra.Mul(decimal.NewFromInt(int64(item.CantidadRestante))))
		}
	}
	return total, nil
}

func (r *stubLoteRepo) DB() *gorm.DB { return nil }

var _ repository.LoteRepository = (*stubLoteRepo)(nil)

// ── VentaRepository stub ──────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Items {
		if v.Items[i].ID == uuid.Nil {
			v.Items[i].ID = uuid.New()
		}
		v.Items[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) FindByClaveIdempotencia(_ context.Context, clave string) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.ClaveIdempotencia != nil && *v.ClaveIdempotencia == clave {
			return v, nil
		}
	}
	return nil, errNotFound
}

func (r *stubVentaRepo) List(ctx context.Context, _ dto.VentaFilter, _ *time.Location) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListRango(_ context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if !v.VendidaEn.Before(desde) && v.VendidaEn.Before(hasta) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VendidaEn.Before(out[j].VendidaEn) })
	return out, nil
}

func (r *stubVentaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) CountItemsPorProducto(_ context.Context, productoID uuid.UUID) (int64, error) {
	var n int64
	for _, v := range r.ventas {
		for _, item := range v.Items {
			if item.ProductoID == productoID {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── MovimientoStockRepository stub ────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoStock
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) ListPorProducto(_ context.Context, productoID uuid.UUID, _ int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, *m)
		}
	}
	return out, nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── Catalog repository stubs ──────────────────────────────────────────────────

type stubMarcaRepo struct {
	marcas map[uuid.UUID]*model.Marca
}

func newStubMarcaRepo() *stubMarcaRepo {
	return &stubMarcaRepo{marcas: make(map[uuid.UUID]*model.Marca)}
}

func (r *stubMarcaRepo) seed(nombre string) *model.Marca {
	m := &model.Marca{ID: uuid.New(), Nombre: nombre, NombreNormalizado: NormalizarNombre(nombre)}
	r.marcas[m.ID] = m
	return m
}

func (r *stubMarcaRepo) Create(_ context.Context, m *model.Marca) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.marcas[m.ID] = m
	return nil
}

func (r *stubMarcaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Marca, error) {
	m, ok := r.marcas[id]
	if !ok {
		return nil, errNotFound
	}
	return m, nil
}

func (r *stubMarcaRepo) FindByNombreNormalizado(_ context.Context, nombre string) (*model.Marca, error) {
	for _, m := range r.marcas {
		if m.NombreNormalizado == nombre {
			return m, nil
		}
	}
	return nil, errNotFound
}

func (r *stubMarcaRepo) List(_ context.Context) ([]model.Marca, error) {
	var out []model.Marca
	for _, m := range r.marcas {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMarcaRepo) Update(_ context.Context, m *model.Marca) error {
	r.marcas[m.ID] = m
	return nil
}

func (r *stubMarcaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.marcas, id)
	return nil
}

var _ repository.MarcaRepository = (*stubMarcaRepo)(nil)

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) seed(nombre string) *model.Categoria {
	c := &model.Categoria{ID: uuid.New(), Nombre: nombre, NombreNormalizado: NormalizarNombre(nombre)}
	r.categorias[c.ID] = c
	return c
}

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) FindByNombreNormalizado(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.NombreNormalizado == nombre {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoriaRepo) Update(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) seed(razonSocial, cuit string) *model.Proveedor {
	p := &model.Proveedor{ID: uuid.New(), RazonSocial: razonSocial, CUIT: cuit}
	r.proveedores[p.ID] = p
	return p
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) FindByCUIT(_ context.Context, cuit string) (*model.Proveedor, error) {
	for _, p := range r.proveedores {
		if p.CUIT == cuit {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.proveedores, id)
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── ConfiguracionRepository stub ──────────────────────────────────────────────

type stubConfiguracionRepo struct {
	porEmail map[string]*model.ConfiguracionUsuario
}

func newStubConfiguracionRepo() *stubConfiguracionRepo {
	return &stubConfiguracionRepo{porEmail: make(map[string]*model.ConfiguracionUsuario)}
}

func (r *stubConfiguracionRepo) FindByEmail(_ context.Context, email string) (*model.ConfiguracionUsuario, error) {
	c, ok := r.porEmail[email]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubConfiguracionRepo) Upsert(_ context.Context, c *model.ConfiguracionUsuario) error {
	if existente, ok := r.porEmail[c.Email]; ok {
		existente.ObjetivoDiario = c.ObjetivoDiario
		return nil
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.porEmail[c.Email] = c
	return nil
}

var _ repository.ConfiguracionRepository = (*stubConfiguracionRepo)(nil)

// ── UsuarioRepository stub ────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[string]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.Email] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	u, ok := r.usuarios[email]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.Email] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
