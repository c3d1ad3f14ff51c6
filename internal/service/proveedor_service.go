package service

import (
	"context"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"

	"github.com/google/uuid"
)

// ProveedorService mirrors CategoriaService: hard delete with an advisory
// dependent count, dangling references read as "N/A".
type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ContarDependientes(ctx context.Context, id uuid.UUID) (int64, error)
}

type proveedorService struct {
	repo         repository.ProveedorRepository
	productoRepo repository.ProductoRepository
}

func NewProveedorService(repo repository.ProveedorRepository, productoRepo repository.ProductoRepository) ProveedorService {
	return &proveedorService{repo: repo, productoRepo: productoRepo}
}

func mapProveedor(p model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Contacto:  p.Contacto,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
	}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		Nombre:    req.Nombre,
		Contacto:  req.Contacto,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return dto.ProveedorResponse{}, err
	}
	return mapProveedor(*p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ProveedorResponse{}, ErrNoEncontrado
	}
	return mapProveedor(*p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapProveedor(p))
	}
	return result, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ProveedorResponse{}, ErrNoEncontrado
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Contacto != nil {
		p.Contacto = req.Contacto
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return dto.ProveedorResponse{}, err
	}
	return mapProveedor(*p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.repo.Delete(ctx, id)
}

func (s *proveedorService) ContarDependientes(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.productoRepo.CountByProveedor(ctx, id)
}
