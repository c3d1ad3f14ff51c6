package service

import (
	"context"
	"errors"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaService defines business operations for product categories.
// Eliminar is a hard delete even when products still reference the categoría:
// dependents keep the dangling id and read as "N/A". ContarDependientes gives
// the UI an advisory count to warn with before deleting.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ContarDependientes(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoriaService struct {
	repo         repository.CategoriaRepository
	productoRepo repository.ProductoRepository
}

func NewCategoriaService(repo repository.CategoriaRepository, productoRepo repository.ProductoRepository) CategoriaService {
	return &categoriaService{repo: repo, productoRepo: productoRepo}
}

func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:          c.ID.String(),
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
	}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	existing, err := s.repo.FindByNombre(ctx, req.Nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoriaResponse{}, err
	}
	if err == nil && existing != nil {
		return dto.CategoriaResponse{}, errors.New("ya existe una categoría con ese nombre")
	}

	c := &model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.CategoriaResponse{}, ErrNoEncontrado
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.CategoriaResponse{}, ErrNoEncontrado
	}

	if req.Nombre != nil && *req.Nombre != c.Nombre {
		existing, err := s.repo.FindByNombre(ctx, *req.Nombre)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoriaResponse{}, err
		}
		if err == nil && existing != nil && existing.ID != id {
			return dto.CategoriaResponse{}, errors.New("ya existe una categoría con ese nombre")
		}
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	// Decouple, never cascade: dependent products keep the dangling id.
	return s.repo.Delete(ctx, id)
}

func (s *categoriaService) ContarDependientes(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.productoRepo.CountByCategoria(ctx, id)
}
