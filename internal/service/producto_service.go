package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache for GET /v1/productos/disponibles: the cart candidate set. Short TTL
// plus explicit invalidation on every stock mutation.
const (
	cacheDisponiblesKey = "cache:productos:disponibles"
	cacheDisponiblesTTL = 30 * time.Second
)

// invalidarDisponibles drops the disponibles cache. Best effort; nil client
// means unit test mode.
func invalidarDisponibles(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, cacheDisponiblesKey).Err()
}

// NombreNA is what reads show when a weak reference points at a deleted
// categoría or proveedor.
const NombreNA = "N/A"

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ListarDisponibles(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	proveedorRepo repository.ProveedorRepository
	rdb           *redis.Client
}

func NewProductoService(
	repo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	proveedorRepo repository.ProveedorRepository,
	rdb *redis.Client,
) ProductoService {
	return &productoService{
		repo:          repo,
		categoriaRepo: categoriaRepo,
		proveedorRepo: proveedorRepo,
		rdb:           rdb,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	catID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, fmt.Errorf("categoria_id inválido: %w", err)
	}
	provID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id inválido: %w", err)
	}
	// Create/update require the references to resolve; only later deletion
	// may leave them dangling.
	if _, err := s.categoriaRepo.FindByID(ctx, catID); err != nil {
		return nil, errors.New("la categoría indicada no existe")
	}
	if _, err := s.proveedorRepo.FindByID(ctx, provID); err != nil {
		return nil, errors.New("el proveedor indicado no existe")
	}

	venc, err := parseFecha(req.FechaVencimiento)
	if err != nil {
		return nil, err
	}

	p := &model.Producto{
		Nombre:           req.Nombre,
		Descripcion:      req.Descripcion,
		CategoriaID:      catID,
		ProveedorID:      provID,
		Precio:           req.Precio,
		Costo:            req.Costo,
		Stock:            req.Stock,
		StockMinimo:      req.StockMinimo,
		FechaVencimiento: venc,
		CodigoBarras:     req.CodigoBarras,
		Activo:           true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	invalidarDisponibles(ctx, s.rdb)

	resp := s.mapProducto(ctx, p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	resp := s.mapProducto(ctx, p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	categorias, proveedores := s.nombres(ctx)
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, mapProductoConNombres(&productos[i], categorias, proveedores))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) ListarDisponibles(ctx context.Context) ([]dto.ProductoResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheDisponiblesKey).Bytes(); err == nil {
			var resp []dto.ProductoResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return resp, nil
			}
		}
	}

	productos, err := s.repo.ListDisponibles(ctx)
	if err != nil {
		return nil, err
	}
	categorias, proveedores := s.nombres(ctx)
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, mapProductoConNombres(&productos[i], categorias, proveedores))
	}

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheDisponiblesKey, b, cacheDisponiblesTTL).Err()
		}
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		catID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		if _, err := s.categoriaRepo.FindByID(ctx, catID); err != nil {
			return nil, errors.New("la categoría indicada no existe")
		}
		p.CategoriaID = catID
	}
	if req.ProveedorID != nil {
		provID, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		if _, err := s.proveedorRepo.FindByID(ctx, provID); err != nil {
			return nil, errors.New("el proveedor indicado no existe")
		}
		p.ProveedorID = provID
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Costo != nil {
		p.Costo = *req.Costo
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.FechaVencimiento != nil {
		venc, err := parseFecha(req.FechaVencimiento)
		if err != nil {
			return nil, err
		}
		p.FechaVencimiento = venc
	}
	if req.CodigoBarras != nil {
		p.CodigoBarras = req.CodigoBarras
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	invalidarDisponibles(ctx, s.rdb)

	resp := s.mapProducto(ctx, p)
	return &resp, nil
}

// Desactivar is the DELETE semantics for products: committed sales reference
// them, so they are never hard-deleted.
func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	if err := s.repo.Desactivar(ctx, id); err != nil {
		return err
	}
	invalidarDisponibles(ctx, s.rdb)
	return nil
}

func parseFecha(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", *s)
	}
	return &t, nil
}

// nombres builds id → nombre lookup tables for categorías and proveedores.
// Failures degrade to empty maps: the mapper then shows "N/A", which is also
// the behavior for genuinely dangling references.
func (s *productoService) nombres(ctx context.Context) (map[uuid.UUID]string, map[uuid.UUID]string) {
	categorias := make(map[uuid.UUID]string)
	if list, err := s.categoriaRepo.List(ctx); err == nil {
		for _, c := range list {
			categorias[c.ID] = c.Nombre
		}
	}
	proveedores := make(map[uuid.UUID]string)
	if list, err := s.proveedorRepo.List(ctx); err == nil {
		for _, p := range list {
			proveedores[p.ID] = p.Nombre
		}
	}
	return categorias, proveedores
}

func (s *productoService) mapProducto(ctx context.Context, p *model.Producto) dto.ProductoResponse {
	categorias, proveedores := s.nombres(ctx)
	return mapProductoConNombres(p, categorias, proveedores)
}

func mapProductoConNombres(p *model.Producto, categorias, proveedores map[uuid.UUID]string) dto.ProductoResponse {
	categoriaNombre, ok := categorias[p.CategoriaID]
	if !ok {
		categoriaNombre = NombreNA
	}
	proveedorNombre, ok := proveedores[p.ProveedorID]
	if !ok {
		proveedorNombre = NombreNA
	}
	var venc *string
	if p.FechaVencimiento != nil {
		f := p.FechaVencimiento.Format("2006-01-02")
		venc = &f
	}
	return dto.ProductoResponse{
		ID:               p.ID.String(),
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		CategoriaID:      p.CategoriaID.String(),
		CategoriaNombre:  categoriaNombre,
		ProveedorID:      p.ProveedorID.String(),
		ProveedorNombre:  proveedorNombre,
		Precio:           p.Precio,
		Costo:            p.Costo,
		Stock:            p.Stock,
		StockMinimo:      p.StockMinimo,
		FechaVencimiento: venc,
		CodigoBarras:     p.CodigoBarras,
		Activo:           p.Activo,
		CreatedAt:        p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
