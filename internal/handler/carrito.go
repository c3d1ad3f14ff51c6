package handler

import (
	"net/http"

	"farmapos/internal/apierror"
	"farmapos/internal/dto"
	"farmapos/internal/middleware"
	"farmapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CarritoHandler exposes the per-user session cart. The session key is the
// user id from the JWT: one open cart per user.
type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

func sesionDe(c *gin.Context) string {
	return middleware.GetClaims(c).UserID
}

// Obtener GET /v1/carrito
func (h *CarritoHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), sesionDe(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener el carrito"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarItem POST /v1/carrito/items
func (h *CarritoHandler) AgregarItem(c *gin.Context) {
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), sesionDe(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FijarCantidad PUT /v1/carrito/items/:producto_id
// cantidad <= 0 removes the line.
func (h *CarritoHandler) FijarCantidad(c *gin.Context) {
	productoID, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.FijarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.FijarCantidad(c.Request.Context(), sesionDe(c), productoID, req.Cantidad)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarItem DELETE /v1/carrito/items/:producto_id
func (h *CarritoHandler) QuitarItem(c *gin.Context) {
	productoID, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, svcErr := h.svc.QuitarItem(c.Request.Context(), sesionDe(c), productoID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abandonar DELETE /v1/carrito
func (h *CarritoHandler) Abandonar(c *gin.Context) {
	if err := h.svc.Abandonar(c.Request.Context(), sesionDe(c)); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al vaciar el carrito"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Confirmar POST /v1/carrito/confirmar
// Converts the cart into a committed sale. On failure the cart is kept so the
// cashier can adjust quantities and retry.
func (h *CarritoHandler) Confirmar(c *gin.Context) {
	var req dto.ConfirmarCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Confirmar(c.Request.Context(), sesionDe(c), actorFromClaims(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
