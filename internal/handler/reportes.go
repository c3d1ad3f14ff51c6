package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"farmapos/internal/apierror"
	"farmapos/internal/dto"
	"farmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// writeCSV streams rows as a CSV attachment. The header row goes first.
func writeCSV(c *gin.Context, filename string, header []string, rows [][]string) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	w.Flush()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Ventas GET /v1/reportes/ventas?fecha_inicio=&fecha_fin=&export=csv
func (h *ReportesHandler) Ventas(c *gin.Context) {
	var filter dto.RangoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Ventas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if filter.Export == "csv" {
		rows := make([][]string, 0, len(resp.Ventas))
		for _, v := range resp.Ventas {
			rows = append(rows, []string{
				v.ID, v.CreatedAt, v.ClienteNombre, v.UsuarioNombre,
				v.MetodoPago, v.Subtotal.StringFixed(2), v.Impuesto.StringFixed(2),
				v.Descuento.StringFixed(2), v.Total.StringFixed(2),
			})
		}
		writeCSV(c, "reporte-ventas",
			[]string{"id", "fecha", "cliente", "usuario", "metodo_pago", "subtotal", "impuesto", "descuento", "total"},
			rows)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transacciones GET /v1/reportes/transacciones
func (h *ReportesHandler) Transacciones(c *gin.Context) {
	var filter dto.RangoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Transacciones(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if filter.Export == "csv" {
		rows := make([][]string, 0, len(resp))
		for _, t := range resp {
			rows = append(rows, []string{
				t.ID, t.Fecha, t.ClienteNombre, t.UsuarioNombre,
				t.MetodoPago, strconv.Itoa(t.Articulos), t.Total.StringFixed(2),
			})
		}
		writeCSV(c, "reporte-transacciones",
			[]string{"id", "fecha", "cliente", "usuario", "metodo_pago", "articulos", "total"},
			rows)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimientos GET /v1/reportes/movimientos
func (h *ReportesHandler) Movimientos(c *gin.Context) {
	var filter dto.RangoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Movimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if filter.Export == "csv" {
		rows := make([][]string, 0, len(resp))
		for _, m := range resp {
			rows = append(rows, []string{
				m.CreatedAt, m.ProductoNombre, m.Tipo, strconv.Itoa(m.Cantidad),
				strconv.Itoa(m.StockAnterior), strconv.Itoa(m.StockNuevo),
				m.Motivo, m.UsuarioNombre,
			})
		}
		writeCSV(c, "reporte-movimientos",
			[]string{"fecha", "producto", "tipo", "cantidad", "stock_anterior", "stock_nuevo", "motivo", "usuario"},
			rows)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Inventario GET /v1/reportes/inventario
// Inventory valuation at cost, with low-stock flags.
func (h *ReportesHandler) Inventario(c *gin.Context) {
	resp, err := h.svc.Inventario(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("export") == "csv" {
		rows := make([][]string, 0, len(resp.Productos))
		for _, p := range resp.Productos {
			rows = append(rows, []string{
				p.Nombre, p.CategoriaNombre, strconv.Itoa(p.Stock), strconv.Itoa(p.StockMinimo),
				p.Costo.StringFixed(2), p.Precio.StringFixed(2), p.ValorCosto.StringFixed(2),
				strconv.FormatBool(p.BajoStock),
			})
		}
		writeCSV(c, "reporte-inventario",
			[]string{"producto", "categoria", "stock", "stock_minimo", "costo", "precio", "valor_costo", "bajo_stock"},
			rows)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorVencer GET /v1/reportes/por-vencer?dias=30
func (h *ReportesHandler) PorVencer(c *gin.Context) {
	var filter dto.PorVencerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Rango de días inválido"))
		return
	}
	resp, err := h.svc.PorVencer(c.Request.Context(), filter.Dias)
	if err != nil {
		respondError(c, err)
		return
	}
	if filter.Export == "csv" {
		rows := make([][]string, 0, len(resp))
		for _, p := range resp {
			rows = append(rows, []string{
				p.Nombre, strconv.Itoa(p.Stock), p.FechaVencimiento, strconv.Itoa(p.DiasRestantes),
			})
		}
		writeCSV(c, "reporte-por-vencer",
			[]string{"producto", "stock", "fecha_vencimiento", "dias_restantes"},
			rows)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MasVendidos GET /v1/reportes/mas-vendidos
func (h *ReportesHandler) MasVendidos(c *gin.Context) {
	resp, err := h.svc.MasVendidos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
