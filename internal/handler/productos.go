package handler

import (
	"errors"
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// CrearProducto godoc
// @Summary      Crear producto
// @Description  Alta de producto con stock inicial 0. El nombre se normaliza (trim, espacios colapsados, mayúsculas) para el control de duplicados.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Datos del producto"
// @Success      201 {object} apierror.Response{data=dto.ProductoResponse}
// @Failure      409 {object} apierror.Response
// @Router       /v1/productos [post]
func (h *ProductosHandler) CrearProducto(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrProductoDuplicado) {
			conflict(c, err.Error())
			return
		}
		badRequest(c, err.Error())
		return
	}
	ok(c, http.StatusCreated, resp)
}

// ObtenerProducto godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      200 {object} apierror.Response{data=dto.ProductoResponse}
// @Failure      404 {object} apierror.Response
// @Router       /v1/productos/{id} [get]
func (h *ProductosHandler) ObtenerProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		notFound(c, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// ListarProductos godoc
// @Summary      Listar productos
// @Description  Lista paginada de productos activos, filtrable por nombre, código, marca y categoría.
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        nombre       query string false "Búsqueda parcial por nombre"
// @Param        barcode      query string false "Código de barras exacto"
// @Param        marca_id     query string false "UUID de la marca"
// @Param        categoria_id query string false "UUID de la categoría"
// @Param        page         query int    false "Página (default 1)"
// @Param        limit        query int    false "Registros por página (default 50)"
// @Success      200 {object} apierror.Response{data=dto.ProductoListResponse}
// @Router       /v1/productos [get]
func (h *ProductosHandler) ListarProductos(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		internal(c, "Error al listar productos")
		return
	}
	ok(c, http.StatusOK, resp)
}

// ActualizarProducto godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial. El stock no es editable por esta vía: solo se mueve con lotes y ventas.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                        true "UUID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Campos a modificar"
// @Success      200 {object} apierror.Response{data=dto.ProductoResponse}
// @Failure      409 {object} apierror.Response
// @Router       /v1/productos/{id} [put]
func (h *ProductosHandler) ActualizarProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrProductoDuplicado) {
			conflict(c, err.Error())
			return
		}
		badRequest(c, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// EliminarProducto godoc
// @Summary      Eliminar producto
// @Description  Bloqueado mientras existan ventas o lotes que lo referencien.
// @Tags         productos
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      409 {object} apierror.Response
// @Router       /v1/productos/{id} [delete]
func (h *ProductosHandler) EliminarProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductoEnUso) {
			conflict(c, err.Error())
			return
		}
		notFound(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// PrecioPorBarcode godoc
// @Summary      Consultar precio por código de barras
// @Description  Lookup de la pantalla de escaneo, con cache Redis de 5 minutos.
// @Tags         precios
// @Produce      json
// @Security     BearerAuth
// @Param        barcode path string true "Código de barras"
// @Success      200 {object} apierror.Response{data=dto.PrecioResponse}
// @Failure      404 {object} apierror.Response
// @Router       /v1/precio/{barcode} [get]
func (h *ProductosHandler) PrecioPorBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		badRequest(c, "Código de barras requerido")
		return
	}
	resp, err := h.svc.PrecioPorBarcode(c.Request.Context(), barcode)
	if err != nil {
		notFound(c, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}
