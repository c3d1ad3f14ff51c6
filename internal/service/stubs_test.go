package service_test

import (
	"context"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var result []model.Producto
	for _, p := range r.productos {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubProductoRepo) ListDisponibles(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Stock > 0 {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) CountByCategoria(_ context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.CategoriaID == categoriaID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) CountByProveedor(_ context.Context, proveedorID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.ProveedorID == proveedorID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) CountActivos(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.Activo {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) CountBajoStock(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.Activo && p.BajoStock() {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) ListActivos(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductoRepo) ListPorVencer(_ context.Context, hasta time.Time) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.FechaVencimiento != nil && !p.FechaVencimiento.After(hasta) {
			result = append(result, *p)
		}
	}
	return result, nil
}

// FindByIDTx mirrors the real repository, which scans the row into a fresh
// struct: callers get a snapshot, not an alias of the stored product.
func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

// DescontarStockTx mirrors the guarded SQL decrement: it fails without
// touching the row when there is not enough stock.
func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return model.ErrStockInsuficiente
	}
	p.Stock -= cantidad
	return nil
}

func (r *stubProductoRepo) IncrementarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += cantidad
	return nil
}

func (r *stubProductoRepo) FijarStockTx(_ *gorm.DB, id uuid.UUID, stock int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = stock
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── In-memory CategoriaRepository stub ───────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) FindByNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	var result []model.Categoria
	for _, c := range r.categorias {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubCategoriaRepo) Update(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categorias[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.categorias, id)
	return nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── In-memory ProveedorRepository stub ───────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var result []model.Proveedor
	for _, p := range r.proveedores {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.proveedores[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.proveedores, id)
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── In-memory ClienteRepository stub ─────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ string) ([]model.Cliente, error) {
	var result []model.Cliente
	for _, c := range r.clientes {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.clientes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.clientes)), nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── In-memory VentaRepository stub ───────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var result []model.Venta
	for _, v := range r.ventas {
		result = append(result, *v)
	}
	return result, int64(len(result)), nil
}

func (r *stubVentaRepo) ListRango(_ context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var result []model.Venta
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(desde) && v.CreatedAt.Before(hasta) {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── In-memory MovimientoRepository stub ──────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoInventario
}

func newStubMovimientoRepo() *stubMovimientoRepo {
	return &stubMovimientoRepo{}
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, _ dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	var result []model.MovimientoInventario
	for _, m := range r.movimientos {
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

func (r *stubMovimientoRepo) ListRango(_ context.Context, desde, hasta time.Time) ([]model.MovimientoInventario, error) {
	var result []model.MovimientoInventario
	for _, m := range r.movimientos {
		if !m.CreatedAt.Before(desde) && m.CreatedAt.Before(hasta) {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *stubMovimientoRepo) DB() *gorm.DB { return nil }

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

// ── In-memory CarritoStore stub ──────────────────────────────────────────────

type stubCarritoStore struct {
	carritos map[string]*model.Carrito
}

func newStubCarritoStore() *stubCarritoStore {
	return &stubCarritoStore{carritos: make(map[string]*model.Carrito)}
}

func (s *stubCarritoStore) Obtener(_ context.Context, sesion string) (*model.Carrito, error) {
	if c, ok := s.carritos[sesion]; ok {
		return c, nil
	}
	return &model.Carrito{}, nil
}

func (s *stubCarritoStore) Guardar(_ context.Context, sesion string, c *model.Carrito) error {
	s.carritos[sesion] = c
	return nil
}

func (s *stubCarritoStore) Eliminar(_ context.Context, sesion string) error {
	delete(s.carritos, sesion)
	return nil
}
