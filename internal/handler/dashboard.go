package handler

import (
	"net/http"

	"farmapos/internal/apierror"
	"farmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats GET /v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadísticas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentasDiarias GET /v1/dashboard/ventas-diarias
func (h *DashboardHandler) VentasDiarias(c *gin.Context) {
	resp, err := h.svc.VentasDiarias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular ventas diarias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProductos GET /v1/dashboard/top-productos
func (h *DashboardHandler) TopProductos(c *gin.Context) {
	resp, err := h.svc.TopProductos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular productos más vendidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
