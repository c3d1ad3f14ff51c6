package service

import (
	"context"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/repository"
)

// RespaldoService handles whole-dataset backup and restore. Restore is
// replace-all inside one transaction; there is no merge.
type RespaldoService interface {
	Exportar(ctx context.Context) (*dto.Respaldo, error)
	Restaurar(ctx context.Context, respaldo *dto.Respaldo) (*dto.RestaurarResponse, error)
}

type respaldoService struct {
	repo repository.RespaldoRepository
}

func NewRespaldoService(repo repository.RespaldoRepository) RespaldoService {
	return &respaldoService{repo: repo}
}

func (s *respaldoService) Exportar(ctx context.Context) (*dto.Respaldo, error) {
	snapshot, err := s.repo.Exportar(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.Respaldo{
		FechaRespaldo: time.Now().UTC().Format(time.RFC3339),
		Categorias:    snapshot.Categorias,
		Proveedores:   snapshot.Proveedores,
		Productos:     snapshot.Productos,
		Clientes:      snapshot.Clientes,
		Ventas:        snapshot.Ventas,
		Movimientos:   snapshot.Movimientos,
	}, nil
}

func (s *respaldoService) Restaurar(ctx context.Context, respaldo *dto.Respaldo) (*dto.RestaurarResponse, error) {
	snapshot := &repository.Snapshot{
		Categorias:  respaldo.Categorias,
		Proveedores: respaldo.Proveedores,
		Productos:   respaldo.Productos,
		Clientes:    respaldo.Clientes,
		Ventas:      respaldo.Ventas,
		Movimientos: respaldo.Movimientos,
	}
	if err := s.repo.Restaurar(ctx, snapshot); err != nil {
		return nil, err
	}
	return &dto.RestaurarResponse{
		Categorias:  len(respaldo.Categorias),
		Proveedores: len(respaldo.Proveedores),
		Productos:   len(respaldo.Productos),
		Clientes:    len(respaldo.Clientes),
		Ventas:      len(respaldo.Ventas),
		Movimientos: len(respaldo.Movimientos),
	}, nil
}
