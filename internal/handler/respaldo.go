package handler

import (
	"net/http"
	"time"

	"farmapos/internal/apierror"
	"farmapos/internal/dto"
	"farmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type RespaldoHandler struct{ svc service.RespaldoService }

func NewRespaldoHandler(svc service.RespaldoService) *RespaldoHandler {
	return &RespaldoHandler{svc: svc}
}

// Exportar GET /v1/respaldo
// Dumps the whole dataset as a downloadable JSON snapshot.
func (h *RespaldoHandler) Exportar(c *gin.Context) {
	resp, err := h.svc.Exportar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el respaldo"))
		return
	}
	c.Header("Content-Disposition", "attachment; filename=respaldo-"+time.Now().Format("2006-01-02")+".json")
	c.JSON(http.StatusOK, resp)
}

// Restaurar POST /v1/respaldo/restaurar
// Replaces ALL data with the uploaded snapshot. Destructive; administrators only.
func (h *RespaldoHandler) Restaurar(c *gin.Context) {
	var req dto.Respaldo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Newf("JSON invalido: %s", err.Error()))
		return
	}
	resp, err := h.svc.Restaurar(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
