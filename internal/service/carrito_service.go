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

// Session carts live in Redis under this TTL. Expiry IS the abandon path: no
// cleanup job, no stock to release, the key just disappears.
const carritoTTL = 30 * time.Minute

// CarritoStore persists session carts. The interface exists so unit tests can
// swap Redis for an in-memory map.
type CarritoStore interface {
	// Obtener returns the session cart; a missing session yields an empty cart.
	Obtener(ctx context.Context, sesion string) (*model.Carrito, error)
	Guardar(ctx context.Context, sesion string, carrito *model.Carrito) error
	Eliminar(ctx context.Context, sesion string) error
}

type redisCarritoStore struct{ rdb *redis.Client }

// NewRedisCarritoStore stores carts as JSON blobs under carrito:<sesion>.
func NewRedisCarritoStore(rdb *redis.Client) CarritoStore {
	return &redisCarritoStore{rdb: rdb}
}

func carritoKey(sesion string) string { return "carrito:" + sesion }

func (s *redisCarritoStore) Obtener(ctx context.Context, sesion string) (*model.Carrito, error) {
	data, err := s.rdb.Get(ctx, carritoKey(sesion)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &model.Carrito{}, nil
	}
	if err != nil {
		return nil, err
	}
	var carrito model.Carrito
	if err := json.Unmarshal(data, &carrito); err != nil {
		// Corrupt blob: treat as expired rather than wedging the session.
		return &model.Carrito{}, nil
	}
	return &carrito, nil
}

func (s *redisCarritoStore) Guardar(ctx context.Context, sesion string, carrito *model.Carrito) error {
	data, err := json.Marshal(carrito)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, carritoKey(sesion), data, carritoTTL).Err()
}

func (s *redisCarritoStore) Eliminar(ctx context.Context, sesion string) error {
	return s.rdb.Del(ctx, carritoKey(sesion)).Err()
}

// CarritoService is the cart/sale builder. Every quantity change re-validates
// against the live stock, but nothing is reserved: the sale committer is the
// only place stock actually moves.
type CarritoService interface {
	Obtener(ctx context.Context, sesion string) (*dto.CarritoResponse, error)
	AgregarItem(ctx context.Context, sesion string, req dto.AgregarItemRequest) (*dto.CarritoResponse, error)
	FijarCantidad(ctx context.Context, sesion string, productoID uuid.UUID, cantidad int) (*dto.CarritoResponse, error)
	QuitarItem(ctx context.Context, sesion string, productoID uuid.UUID) (*dto.CarritoResponse, error)
	Abandonar(ctx context.Context, sesion string) error
	Confirmar(ctx context.Context, sesion string, actor Actor, req dto.ConfirmarCarritoRequest) (*dto.VentaResponse, error)
}

type carritoService struct {
	store        CarritoStore
	productoRepo repository.ProductoRepository
	ventas       VentaService
}

func NewCarritoService(store CarritoStore, productoRepo repository.ProductoRepository, ventas VentaService) CarritoService {
	return &carritoService{store: store, productoRepo: productoRepo, ventas: ventas}
}

func (s *carritoService) Obtener(ctx context.Context, sesion string) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Obtener(ctx, sesion)
	if err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) AgregarItem(ctx context.Context, sesion string, req dto.AgregarItemRequest) (*dto.CarritoResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("producto %s no encontrado", req.ProductoID)
	}
	if !p.Activo {
		return nil, fmt.Errorf("producto %s está inactivo", p.Nombre)
	}

	carrito, err := s.store.Obtener(ctx, sesion)
	if err != nil {
		return nil, err
	}
	if err := carrito.Agregar(p); err != nil {
		return nil, fmt.Errorf("%w: %s", err, p.Nombre)
	}
	if err := s.store.Guardar(ctx, sesion, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) FijarCantidad(ctx context.Context, sesion string, productoID uuid.UUID, cantidad int) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Obtener(ctx, sesion)
	if err != nil {
		return nil, err
	}

	stockActual := 0
	if cantidad > 0 {
		p, err := s.productoRepo.FindByID(ctx, productoID)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", productoID)
		}
		stockActual = p.Stock
	}

	if err := carrito.FijarCantidad(productoID, cantidad, stockActual); err != nil {
		return nil, err
	}
	if err := s.store.Guardar(ctx, sesion, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) QuitarItem(ctx context.Context, sesion string, productoID uuid.UUID) (*dto.CarritoResponse, error) {
	carrito, err := s.store.Obtener(ctx, sesion)
	if err != nil {
		return nil, err
	}
	carrito.Quitar(productoID)
	if err := s.store.Guardar(ctx, sesion, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito), nil
}

func (s *carritoService) Abandonar(ctx context.Context, sesion string) error {
	return s.store.Eliminar(ctx, sesion)
}

// Confirmar funnels the session cart into the sale committer. On success the
// session is cleared; on failure (typically a concurrent sale drained the
// stock) the cart is kept so the user can adjust and retry.
func (s *carritoService) Confirmar(ctx context.Context, sesion string, actor Actor, req dto.ConfirmarCarritoRequest) (*dto.VentaResponse, error) {
	carrito, err := s.store.Obtener(ctx, sesion)
	if err != nil {
		return nil, err
	}
	if carrito.Vacio() {
		return nil, errors.New("el carrito está vacío")
	}

	ventaReq := dto.RegistrarVentaRequest{
		ClienteID:  req.ClienteID,
		MetodoPago: req.MetodoPago,
		Impuesto:   req.Impuesto,
		Descuento:  req.Descuento,
	}
	for _, item := range carrito.Items {
		ventaReq.Detalles = append(ventaReq.Detalles, dto.DetalleVentaRequest{
			ProductoID:     item.ProductoID.String(),
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal(),
		})
	}

	resp, err := s.ventas.RegistrarVenta(ctx, actor, ventaReq)
	if err != nil {
		return nil, err
	}
	_ = s.store.Eliminar(ctx, sesion)
	return resp, nil
}

func carritoToResponse(c *model.Carrito) *dto.CarritoResponse {
	items := make([]dto.ItemCarritoResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.ItemCarritoResponse{
			ProductoID:     it.ProductoID.String(),
			ProductoNombre: it.ProductoNombre,
			PrecioUnitario: it.PrecioUnitario,
			Cantidad:       it.Cantidad,
			Subtotal:       it.Subtotal(),
		})
	}
	return &dto.CarritoResponse{
		Items:    items,
		Subtotal: c.Subtotal(),
	}
}
