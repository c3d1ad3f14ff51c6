package service

import (
	"context"
	"fmt"
	"strings"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"
	"farmapos/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InventarioService is the movement recorder: the only write path into the
// stock ledger besides the sale committer.
type InventarioService interface {
	RegistrarMovimiento(ctx context.Context, actor Actor, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoRepository
	dispatcher     *worker.Dispatcher
	rdb            *redis.Client
}

func NewInventarioService(
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoRepository,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) InventarioService {
	return &inventarioService{
		productoRepo:   productoRepo,
		movimientoRepo: movimientoRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
	}
}

// RegistrarMovimiento applies one ledger entry and its stock effect in a
// single transaction:
//   - entrada: stock += cantidad
//   - salida:  stock -= cantidad (guarded, fails on insufficient stock)
//   - ajuste:  stock  = cantidad (absolute target, e.g. after a physical count)
func (s *inventarioService) RegistrarMovimiento(ctx context.Context, actor Actor, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	if !model.TipoMovimientoValido(req.Tipo) {
		return nil, fmt.Errorf("tipo de movimiento inválido: %s", req.Tipo)
	}
	if req.Cantidad < 1 {
		return nil, fmt.Errorf("la cantidad debe ser mayor a cero")
	}
	if strings.TrimSpace(req.Motivo) == "" {
		return nil, fmt.Errorf("el motivo es obligatorio")
	}
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	producto, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("producto %s no encontrado", req.ProductoID)
	}

	var mov model.MovimientoInventario
	txErr := runTx(ctx, s.movimientoRepo.DB(), func(tx *gorm.DB) error {
		antes, err := s.productoRepo.FindByIDTx(tx, pid)
		if err != nil {
			return err
		}

		stockNuevo := antes.Stock
		switch req.Tipo {
		case model.TipoEntrada:
			if err := s.productoRepo.IncrementarStockTx(tx, pid, req.Cantidad); err != nil {
				return err
			}
			stockNuevo = antes.Stock + req.Cantidad
		case model.TipoSalida:
			if err := s.productoRepo.DescontarStockTx(tx, pid, req.Cantidad); err != nil {
				return fmt.Errorf("%w: %s", err, producto.Nombre)
			}
			stockNuevo = antes.Stock - req.Cantidad
		case model.TipoAjuste:
			if err := s.productoRepo.FijarStockTx(tx, pid, req.Cantidad); err != nil {
				return err
			}
			stockNuevo = req.Cantidad
		}

		mov = model.MovimientoInventario{
			ProductoID:     pid,
			ProductoNombre: producto.Nombre,
			Tipo:           req.Tipo,
			Cantidad:       req.Cantidad,
			StockAnterior:  antes.Stock,
			StockNuevo:     stockNuevo,
			Motivo:         req.Motivo,
			UsuarioID:      actor.ID,
			UsuarioNombre:  actor.Nombre,
		}
		return s.movimientoRepo.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil && mov.StockNuevo <= producto.StockMinimo {
		_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
			ProductoID:  pid.String(),
			Nombre:      producto.Nombre,
			Stock:       mov.StockNuevo,
			StockMinimo: producto.StockMinimo,
		})
	}
	invalidarDisponibles(ctx, s.rdb)

	resp := movimientoToResponse(&mov)
	return &resp, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movimientos, total, err := s.movimientoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(movimientos))
	for i := range movimientos {
		items = append(items, movimientoToResponse(&movimientos[i]))
	}
	return &dto.MovimientoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movimientoToResponse(m *model.MovimientoInventario) dto.MovimientoResponse {
	var ref *string
	if m.ReferenciaID != nil {
		s := m.ReferenciaID.String()
		ref = &s
	}
	return dto.MovimientoResponse{
		ID:             m.ID.String(),
		ProductoID:     m.ProductoID.String(),
		ProductoNombre: m.ProductoNombre,
		Tipo:           m.Tipo,
		Cantidad:       m.Cantidad,
		StockAnterior:  m.StockAnterior,
		StockNuevo:     m.StockNuevo,
		Motivo:         m.Motivo,
		UsuarioID:      m.UsuarioID.String(),
		UsuarioNombre:  m.UsuarioNombre,
		ReferenciaID:   ref,
		CreatedAt:      m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
