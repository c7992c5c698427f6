package service

import (
	"context"
	"testing"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productoFixture struct {
	svc          ProductoService
	productoRepo *stubProductoRepo
	marcaRepo    *stubMarcaRepo
	catRepo      *stubCategoriaRepo
	ventaRepo    *stubVentaRepo
	loteRepo     *stubLoteRepo
	marca        *model.Marca
	categoria    *model.Categoria
}

func newProductoFixture() *productoFixture {
	f := &productoFixture{
		productoRepo: newStubProductoRepo(),
		marcaRepo:    newStubMarcaRepo(),
		catRepo:      newStubCategoriaRepo(),
		ventaRepo:    newStubVentaRepo(),
		loteRepo:     newStubLoteRepo(),
	}
	f.marca = f.marcaRepo.seed("Arcor")
	f.categoria = f.catRepo.seed("Golosinas")
	f.svc = NewProductoService(f.productoRepo, f.marcaRepo, f.catRepo, f.ventaRepo, f.loteRepo, nil)
	return f
}

func (f *productoFixture) crearReq(nombre, barcode string) dto.CrearProductoRequest {
	return dto.CrearProductoRequest{
		Nombre:       nombre,
		CodigoBarras: barcode,
		MarcaID:      f.marca.ID.String(),
		CategoriaID:  f.categoria.ID.String(),
		PrecioVenta:  decimal.NewFromInt(1500),
	}
}

func TestCrearProductoArrancaSinStock(t *testing.T) {
	f := newProductoFixture()

	resp, err := f.svc.Crear(context.Background(), f.crearReq("Bon o Bon", "7791111111111"))
	require.NoError(t, err)

	assert.Equal(t, 0, resp.StockActual, "stock only moves via lots and sales")
	assert.True(t, resp.Activo)
	assert.Equal(t, "Arcor", resp.Marca)
	assert.Equal(t, "Golosinas", resp.Categoria)
}

func TestCrearProductoNombreDuplicadoNormalizado(t *testing.T) {
	f := newProductoFixture()

	_, err := f.svc.Crear(context.Background(), f.crearReq("Bon o Bon", "7791111111111"))
	require.NoError(t, err)

	_, err = f.svc.Crear(context.Background(), f.crearReq("  bon  O  BON ", "7792222222222"))
	require.ErrorIs(t, err, ErrProductoDuplicado)
}

func TestCrearProductoBarcodeDuplicado(t *testing.T) {
	f := newProductoFixture()

	_, err := f.svc.Crear(context.Background(), f.crearReq("Bon o Bon", "7791111111111"))
	require.NoError(t, err)

	_, err = f.svc.Crear(context.Background(), f.crearReq("Otro Producto", "7791111111111"))
	require.ErrorIs(t, err, ErrProductoDuplicado)
}

func TestCrearProductoMarcaInexistente(t *testing.T) {
	f := newProductoFixture()
	req := f.crearReq("Bon o Bon", "7791111111111")
	req.MarcaID = uuid.NewString()

	_, err := f.svc.Crear(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, f.productoRepo.productos)
}

func TestActualizarProductoParcial(t *testing.T) {
	f := newProductoFixture()
	creado, err := f.svc.Crear(context.Background(), f.crearReq("Bon o Bon", "7791111111111"))
	require.NoError(t, err)
	id, _ := uuid.Parse(creado.ID)

	nuevoPrecio := decimal.NewFromInt(1800)
	resp, err := f.svc.Actualizar(context.Background(), id, dto.ActualizarProductoRequest{
		PrecioVenta: &nuevoPrecio,
	})
	require.NoError(t, err)

	assert.True(t, resp.PrecioVenta.Equal(nuevoPrecio))
	assert.Equal(t, "Bon o Bon", resp.Nombre, "absent fields stay untouched")
	assert.Equal(t, "7791111111111", resp.CodigoBarras)
}

func TestActualizarProductoPrecioNegativo(t *testing.T) {
	f := newProductoFixture()
	creado, err := f.svc.Crear(context.Background(), f.crearReq("Bon o Bon", "7791111111111"))
	require.NoError(t, err)
	id, _ := uuid.Parse(creado.ID)

	negativo := decimal.NewFromInt(-10)
	_, err = f.svc.Actualizar(context.Background(), id, dto.ActualizarProductoRequest{
		PrecioVenta: &negativo,
	})
	require.Error(t, err)
}

func TestEliminarProductoConVentasBloqueado(t *testing.T) {
	f := newProductoFixture()
	creado, err := f.svc.Crear(context.Background(), f.crearReq("Bon o Bon", "7791111111111"))
	require.NoError(t, err)
	id, _ := uuid.Parse(creado.ID)

	_ = f.ventaRepo.Create(context.Background(), nil, &model.Venta{
		Items: []model.VentaItem{{ProductoID: id, Nombre: "Bon o Bon", Cantidad: 1}},
	})

	err = f.svc.Eliminar(context.Background(), id)
	require.ErrorIs(t, err, ErrProductoEnUso)
	assert.Len(t, f.productoRepo.productos, 1)
}

func TestEliminarProductoSinReferencias(t *testing.T) {
	f := newProductoFixture()
	creado, err := f.svc.Crear(context.Background(), f.crearReq("Bon o Bon", "7791111111111"))
	require.NoError(t, err)
	id, _ := uuid.Parse(creado.ID)

	require.NoError(t, f.svc.Eliminar(context.Background(), id))
	assert.Empty(t, f.productoRepo.productos)
}

func TestPrecioPorBarcode(t *testing.T) {
	f := newProductoFixture()
	_, err := f.svc.Crear(context.Background(), f.crearReq("Bon o Bon", "7791111111111"))
	require.NoError(t, err)

	resp, err := f.svc.PrecioPorBarcode(context.Background(), "7791111111111")
	require.NoError(t, err)
	assert.Equal(t, "Bon o Bon", resp.Nombre)
	assert.True(t, resp.PrecioVenta.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 0, resp.StockDisponible)

	_, err = f.svc.PrecioPorBarcode(context.Background(), "0000000000000")
	require.Error(t, err)
}
