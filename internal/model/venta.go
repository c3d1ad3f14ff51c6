package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted on a sale. The method is a label only; no
// gateway is involved.
const (
	PagoEfectivo      = "efectivo"
	PagoTarjeta       = "tarjeta"
	PagoTransferencia = "transferencia"
)

// ClienteGeneral is the snapshot name used when a sale has no cliente.
const ClienteGeneral = "Cliente General"

// MetodoPagoValido reports whether m is one of the accepted payment labels.
func MetodoPagoValido(m string) bool {
	return m == PagoEfectivo || m == PagoTarjeta || m == PagoTransferencia
}

// Venta is an immutable, committed sale. Cliente and usuario names are
// snapshotted so later catalog edits never rewrite history.
// Total = Subtotal + Impuesto - Descuento, and is never negative.
type Venta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     *uuid.UUID      `gorm:"type:uuid;index"`
	ClienteNombre string          `gorm:"not null"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioNombre string          `gorm:"not null"`
	MetodoPago    string          `gorm:"not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Impuesto      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descuento     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time       `gorm:"index"`

	Detalles []VentaDetalle `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaDetalle is one sale line. ProductoNombre and PrecioUnitario are
// snapshots taken at commit time.
type VentaDetalle struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoNombre string    `gorm:"not null"`
	Cantidad       int       `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (VentaDetalle) TableName() string { return "venta_detalles" }
