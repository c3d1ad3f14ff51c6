package dto

// RegistrarMovimientoRequest creates one ledger entry. Cantidad is always
// positive; tipo carries the direction, and for "ajuste" cantidad is the
// absolute target stock level.
type RegistrarMovimientoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Tipo       string `json:"tipo"        validate:"required,oneof=entrada salida ajuste"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
	Motivo     string `json:"motivo"      validate:"required,min=3,max=250"`
}

// MovimientoFilter is bound from the query string of GET /v1/inventario/movimientos.
type MovimientoFilter struct {
	ProductoID string `form:"producto_id"`
	Tipo       string `form:"tipo"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoResponse struct {
	ID             string  `json:"id"`
	ProductoID     string  `json:"producto_id"`
	ProductoNombre string  `json:"producto_nombre"`
	Tipo           string  `json:"tipo"`
	Cantidad       int     `json:"cantidad"`
	StockAnterior  int     `json:"stock_anterior"`
	StockNuevo     int     `json:"stock_nuevo"`
	Motivo         string  `json:"motivo"`
	UsuarioID      string  `json:"usuario_id"`
	UsuarioNombre  string  `json:"usuario_nombre"`
	ReferenciaID   *string `json:"referencia_id"`
	CreatedAt      string  `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
