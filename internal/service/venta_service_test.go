package service

import (
	"context"
	"testing"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaFixture struct {
	svc            VentaService
	productoRepo   *stubProductoRepo
	ventaRepo      *stubVentaRepo
	loteRepo       *stubLoteRepo
	movimientoRepo *stubMovimientoRepo
}

func newVentaFixture() *ventaFixture {
	f := &ventaFixture{
		productoRepo:   newStubProductoRepo(),
		ventaRepo:      newStubVentaRepo(),
		loteRepo:       newStubLoteRepo(),
		movimientoRepo: newStubMovimientoRepo(),
	}
	f.svc = NewVentaService(f.ventaRepo, f.productoRepo, f.loteRepo, f.movimientoRepo, nil, time.UTC)
	return f
}

func (f *ventaFixture) seedProducto(nombre string, stock int) *model.Producto {
	return f.productoRepo.seed(&model.Producto{
		Nombre:       nombre,
		CodigoBarras: "779" + uuid.NewString()[:8],
		MarcaID:      uuid.New(),
		CategoriaID:  uuid.New(),
		PrecioVenta:  decimal.NewFromInt(5000),
		StockActual:  stock,
		Activo:       true,
	})
}

func (f *ventaFixture) seedLote(productoID uuid.UUID, cantidad int, precioCompra int64, recibidoEn time.Time) *model.Lote {
	lote := &model.Lote{
		ProveedorID:   uuid.New(),
		RecibidoEn:    recibidoEn,
		CantidadTotal: cantidad,
		CostoTotal:    decimal.NewFromInt(precioCompra * int64(cantidad)),
		Items: []model.LoteItem{{
			ProductoID:       productoID,
			Cantidad:         cantidad,
			PrecioCompra:     decimal.NewFromInt(precioCompra),
			CostoTotal:       decimal.NewFromInt(precioCompra * int64(cantidad)),
			CantidadRestante: cantidad,
		}},
	}
	_ = f.loteRepo.Create(context.Background(), nil, lote)
	return lote
}

func itemReq(p *model.Producto, cantidad int, precio, costo int64) dto.ItemVentaRequest {
	return dto.ItemVentaRequest{
		ProductoID:     p.ID.String(),
		Cantidad:       cantidad,
		PrecioUnitario: decimal.NewFromInt(precio),
		CostoUnitario:  decimal.NewFromInt(costo),
	}
}

func TestRegistrarVentaDescuentaStockYCalculaTotales(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("Coca Cola 500ml", 10)

	resp, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{itemReq(p, 3, 5000, 3000)},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, p.StockActual)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(15000)), "total: %s", resp.Total)
	assert.True(t, resp.CostoTotal.Equal(decimal.NewFromInt(9000)))
	assert.True(t, resp.GananciaTotal.Equal(decimal.NewFromInt(6000)))
	assert.Equal(t, 3, resp.TotalItems)
	assert.False(t, resp.ConflictoStock)

	// Totals identity holds per line too
	require.Len(t, resp.Items, 1)
	linea := resp.Items[0]
	assert.True(t, linea.GananciaLinea.Equal(linea.TotalLinea.Sub(linea.CostoLinea)))
	assert.Equal(t, "Coca Cola 500ml", linea.Nombre)

	// Stock movement journaled, traceable back to the sale
	movs, err := f.movimientoRepo.ListPorProducto(context.Background(), p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "venta", movs[0].Tipo)
	assert.Equal(t, -3, movs[0].Cantidad)
	assert.Equal(t, 10, movs[0].StockAnterior)
	assert.Equal(t, 7, movs[0].StockNuevo)
	require.NotNil(t, movs[0].ReferenciaID, "journal rows carry the sale id")
	assert.Equal(t, resp.ID, movs[0].ReferenciaID.String())
}

func TestVentasSecuencialesSoloLaSegundaEnConflicto(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("Azucar 1kg", 10)

	primera, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{itemReq(p, 6, 2000, 1200)},
	})
	require.NoError(t, err)
	assert.False(t, primera.ConflictoStock)
	assert.Equal(t, 4, p.StockActual)

	segunda, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{itemReq(p, 6, 2000, 1200)},
	})
	require.NoError(t, err)
	assert.True(t, segunda.ConflictoStock, "the sale that exhausted the count gets flagged")
	assert.Equal(t, 0, p.StockActual, "never negative")

	movs, _ := f.movimientoRepo.ListPorProducto(context.Background(), p.ID, 10)
	require.Len(t, movs, 2)
	assert.Equal(t, 4, movs[0].StockNuevo)
	assert.Equal(t, 0, movs[1].StockNuevo)
}

func TestListVentasResumeCadaLinea(t *testing.T) {
	f := newVentaFixture()
	coca := f.seedProducto("Coca Cola 500ml", 10)
	yerba := f.seedProducto("Yerba 1kg", 10)

	_, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			itemReq(coca, 2, 5000, 3000),
			itemReq(yerba, 1, 8000, 5000),
		},
	})
	require.NoError(t, err)

	resp, err := f.svc.ListVentas(context.Background(), dto.VentaFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.Limit)
	require.Len(t, resp.Data, 1)

	fila := resp.Data[0]
	assert.Equal(t, "Coca Cola 500ml x2, Yerba 1kg x1", fila.Productos,
		"every line appears exactly once with its quantity")
	assert.Equal(t, 3, fila.TotalItems)
	assert.True(t, fila.Total.Equal(decimal.NewFromInt(18000)))
	require.Len(t, fila.Items, 2)
}

func TestRegistrarVentaOversellClampaYMarcaConflicto(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("Yerba 1kg", 2)

	resp, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{itemReq(p, 5, 8000, 5000)},
	})
	require.NoError(t, err, "oversell must not reject the sale")

	assert.Equal(t, 0, p.StockActual, "stock clamps at zero, never negative")
	assert.True(t, resp.ConflictoStock)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(40000)), "the sale records what was charged")

	movs, _ := f.movimientoRepo.ListPorProducto(context.Background(), p.ID, 10)
	require.Len(t, movs, 1)
	assert.Equal(t, 0, movs[0].StockNuevo)
}

func TestRegistrarVentaIdempotente(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("Pan lactal", 10)
	clave := uuid.NewString()

	req := dto.RegistrarVentaRequest{
		Items:             []dto.ItemVentaRequest{itemReq(p, 2, 3000, 1500)},
		ClaveIdempotencia: &clave,
	}

	primera, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", req)
	require.NoError(t, err)
	segunda, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", req)
	require.NoError(t, err)

	assert.Equal(t, primera.ID, segunda.ID, "retry returns the original sale")
	assert.Equal(t, 8, p.StockActual, "stock decremented exactly once")
	assert.Len(t, f.ventaRepo.ventas, 1)
}

func TestRegistrarVentaAgrupaLineasPorProducto(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("Galletitas", 10)

	// Same product scanned on two separate cart lines
	resp, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			itemReq(p, 2, 1000, 600),
			itemReq(p, 3, 1000, 600),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, p.StockActual)
	assert.Equal(t, 5, resp.TotalItems)
	assert.Len(t, resp.Items, 2, "lines stay separate in the ledger")

	movs, _ := f.movimientoRepo.ListPorProducto(context.Background(), p.ID, 10)
	require.Len(t, movs, 1, "one decrement per product, not per line")
	assert.Equal(t, -5, movs[0].Cantidad)
}

func TestRegistrarVentaProductoInactivoRechazada(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("Descontinuado", 10)
	p.Activo = false

	_, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{itemReq(p, 1, 1000, 500)},
	})
	require.Error(t, err)
	assert.Equal(t, 10, p.StockActual)
	assert.Empty(t, f.ventaRepo.ventas)
}

func TestRegistrarVentaConsumeLotesFIFO(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("Aceite 900ml", 10)
	viejo := f.seedLote(p.ID, 5, 2000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	nuevo := f.seedLote(p.ID, 5, 2500, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	_, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{itemReq(p, 7, 4000, 2200)},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, viejo.Items[0].CantidadRestante, "oldest lot drained first")
	assert.Equal(t, 3, nuevo.Items[0].CantidadRestante)
}

func TestEliminarVentaNoRestauraStock(t *testing.T) {
	f := newVentaFixture()
	p := f.seedProducto("Fideos 500g", 10)

	resp, err := f.svc.RegistrarVenta(context.Background(), "ana@negocio.com", dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{itemReq(p, 4, 2000, 1200)},
	})
	require.NoError(t, err)
	require.Equal(t, 6, p.StockActual)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.EliminarVenta(context.Background(), id))

	assert.Empty(t, f.ventaRepo.ventas)
	assert.Equal(t, 6, p.StockActual, "deleting the ledger entry does not rewind stock")
}

func TestEliminarVentaInexistente(t *testing.T) {
	f := newVentaFixture()
	err := f.svc.EliminarVenta(context.Background(), uuid.New())
	require.Error(t, err)
}
