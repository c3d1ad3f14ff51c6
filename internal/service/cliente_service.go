package service

import (
	"context"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.ClienteResponse, error)
	Listar(ctx context.Context, nombre string) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func mapCliente(c model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (dto.ClienteResponse, error) {
	c := &model.Cliente{
		Nombre:    req.Nombre,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.ClienteResponse{}, err
	}
	return mapCliente(*c), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ClienteResponse{}, ErrNoEncontrado
	}
	return mapCliente(*c), nil
}

func (s *clienteService) Listar(ctx context.Context, nombre string) ([]dto.ClienteResponse, error) {
	list, err := s.repo.List(ctx, nombre)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCliente(c))
	}
	return result, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ClienteResponse{}, ErrNoEncontrado
	}

	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		c.Telefono = *req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return dto.ClienteResponse{}, err
	}
	return mapCliente(*c), nil
}

// Eliminar removes the cliente. Sales keep their snapshotted name, so history
// stays intact.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.repo.Delete(ctx, id)
}
