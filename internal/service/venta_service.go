package service

import (
	"context"
	"errors"
	"fmt"

	"farmapos/internal/dto"
	"farmapos/internal/infra"
	"farmapos/internal/model"
	"farmapos/internal/repository"
	"farmapos/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, actor Actor, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	TicketPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	productoRepo   repository.ProductoRepository
	clienteRepo    repository.ClienteRepository
	movimientoRepo repository.MovimientoRepository
	dispatcher     *worker.Dispatcher
	rdb            *redis.Client
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	movimientoRepo repository.MovimientoRepository,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) VentaService {
	return &ventaService{
		repo:           repo,
		productoRepo:   productoRepo,
		clienteRepo:    clienteRepo,
		movimientoRepo: movimientoRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// The sale committer:
//   1. Resolve the cliente (nil → "Cliente General") and every line against
//      the live catalog; verify money arithmetic and current stock. Nothing
//      has been persisted if any of this fails.
//   2. BEGIN TX: insert venta + detalles, guarded stock decrement per line,
//      one salida movement per line with stock before/after.
//   3. COMMIT. A concurrent commit that raced us to the last unit makes the
//      guarded decrement affect zero rows, which aborts and rolls back
//      everything.
//   4. (async) enqueue low-stock alerts, drop the disponibles cache.

func (s *ventaService) RegistrarVenta(ctx context.Context, actor Actor, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Detalles) == 0 {
		return nil, errors.New("la venta no tiene detalles")
	}
	if !model.MetodoPagoValido(req.MetodoPago) {
		return nil, fmt.Errorf("metodo de pago inválido: %s", req.MetodoPago)
	}
	if req.Impuesto.IsNegative() || req.Descuento.IsNegative() {
		return nil, errors.New("impuesto y descuento deben ser >= 0")
	}

	// Resolve cliente and snapshot the name, default "Cliente General".
	clienteNombre := model.ClienteGeneral
	var clienteID *uuid.UUID
	if req.ClienteID != nil && *req.ClienteID != "" {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		cliente, err := s.clienteRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, errors.New("cliente no encontrado")
		}
		clienteID = &cid
		clienteNombre = cliente.Nombre
	}

	// Resolve products and verify each line (pre-flight, outside TX).
	type resolvedLine struct {
		producto   *model.Producto
		cantidad   int
		precio     decimal.Decimal
		subtotal   decimal.Decimal
		stockNuevo int
	}

	var resolved []resolvedLine
	subtotal := decimal.Zero
	for _, det := range req.Detalles {
		pid, err := uuid.Parse(det.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		if det.Cantidad < 1 {
			return nil, errors.New("la cantidad debe ser mayor a cero")
		}
		if det.PrecioUnitario.IsNegative() {
			return nil, errors.New("el precio unitario no puede ser negativo")
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", det.ProductoID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s está inactivo y no puede venderse", p.Nombre)
		}
		esperado := det.PrecioUnitario.Mul(decimal.NewFromInt(int64(det.Cantidad)))
		if !det.Subtotal.Equal(esperado) {
			return nil, fmt.Errorf("subtotal inconsistente para %s: %s != %s × %d",
				p.Nombre, det.Subtotal, det.PrecioUnitario, det.Cantidad)
		}
		if p.Stock < det.Cantidad {
			return nil, fmt.Errorf("%w: %s (disponible %d, solicitado %d)",
				model.ErrStockInsuficiente, p.Nombre, p.Stock, det.Cantidad)
		}
		subtotal = subtotal.Add(det.Subtotal)
		resolved = append(resolved, resolvedLine{
			producto: p,
			cantidad: det.Cantidad,
			precio:   det.PrecioUnitario,
			subtotal: det.Subtotal,
		})
	}

	total := subtotal.Add(req.Impuesto).Sub(req.Descuento)
	if total.IsNegative() {
		return nil, errors.New("el descuento no puede exceder el total de la venta")
	}

	// ACID transaction: venta + detalles + stock + ledger, all or nothing.
	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta = model.Venta{
			ClienteID:     clienteID,
			ClienteNombre: clienteNombre,
			UsuarioID:     actor.ID,
			UsuarioNombre: actor.Nombre,
			MetodoPago:    req.MetodoPago,
			Subtotal:      subtotal,
			Impuesto:      req.Impuesto,
			Descuento:     req.Descuento,
			Total:         total,
		}
		for _, r := range resolved {
			venta.Detalles = append(venta.Detalles, model.VentaDetalle{
				ProductoID:     r.producto.ID,
				ProductoNombre: r.producto.Nombre,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
			})
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}

		motivo := fmt.Sprintf("Venta #%s", venta.ID.String()[:8])
		for i := range resolved {
			r := &resolved[i]

			// Stock INSIDE the tx for the movement snapshot.
			antes, err := s.productoRepo.FindByIDTx(tx, r.producto.ID)
			if err != nil {
				return err
			}
			if err := s.productoRepo.DescontarStockTx(tx, r.producto.ID, r.cantidad); err != nil {
				return fmt.Errorf("%w: %s", err, r.producto.Nombre)
			}
			r.stockNuevo = antes.Stock - r.cantidad

			ventaRef := venta.ID
			mov := &model.MovimientoInventario{
				ProductoID:     r.producto.ID,
				ProductoNombre: r.producto.Nombre,
				Tipo:           model.TipoSalida,
				Cantidad:       r.cantidad,
				StockAnterior:  antes.Stock,
				StockNuevo:     r.stockNuevo,
				Motivo:         motivo,
				UsuarioID:      actor.ID,
				UsuarioNombre:  actor.Nombre,
				ReferenciaID:   &ventaRef,
			}
			if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit, best effort: low-stock alerts + cache invalidation.
	if s.dispatcher != nil {
		for _, r := range resolved {
			if r.stockNuevo <= r.producto.StockMinimo {
				_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
					ProductoID:  r.producto.ID.String(),
					Nombre:      r.producto.Nombre,
					Stock:       r.stockNuevo,
					StockMinimo: r.producto.StockMinimo,
				})
			}
		}
	}
	invalidarDisponibles(ctx, s.rdb)

	return ventaToResponse(&venta), nil
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// TicketPDF renders the thermal receipt for a committed sale.
func (s *ventaService) TicketPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return infra.TicketPDF(venta)
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		detalles = append(detalles, dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID.String(),
			ProductoNombre: d.ProductoNombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	var clienteID *string
	if v.ClienteID != nil {
		s := v.ClienteID.String()
		clienteID = &s
	}
	return &dto.VentaResponse{
		ID:            v.ID.String(),
		ClienteID:     clienteID,
		ClienteNombre: v.ClienteNombre,
		UsuarioID:     v.UsuarioID.String(),
		UsuarioNombre: v.UsuarioNombre,
		MetodoPago:    v.MetodoPago,
		Detalles:      detalles,
		Subtotal:      v.Subtotal,
		Impuesto:      v.Impuesto,
		Descuento:     v.Descuento,
		Total:         v.Total,
		CreatedAt:     v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
