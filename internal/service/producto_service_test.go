package service_test

import (
	"context"
	"testing"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductoFixture() (service.ProductoService, *stubProductoRepo, *stubCategoriaRepo, *stubProveedorRepo) {
	productoRepo := newStubProductoRepo()
	categoriaRepo := newStubCategoriaRepo()
	proveedorRepo := newStubProveedorRepo()
	svc := service.NewProductoService(productoRepo, categoriaRepo, proveedorRepo, nil)
	return svc, productoRepo, categoriaRepo, proveedorRepo
}

func seedRefs(categoriaRepo *stubCategoriaRepo, proveedorRepo *stubProveedorRepo) (*model.Categoria, *model.Proveedor) {
	cat := &model.Categoria{ID: uuid.New(), Nombre: "Analgésicos"}
	prov := &model.Proveedor{ID: uuid.New(), Nombre: "Droguería del Centro"}
	categoriaRepo.categorias[cat.ID] = cat
	proveedorRepo.proveedores[prov.ID] = prov
	return cat, prov
}

func TestProductoCrear(t *testing.T) {
	svc, productoRepo, categoriaRepo, proveedorRepo := newProductoFixture()
	cat, prov := seedRefs(categoriaRepo, proveedorRepo)
	fecha := "2027-06-30"

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:           "Paracetamol 500mg x20",
		CategoriaID:      cat.ID.String(),
		ProveedorID:      prov.ID.String(),
		Precio:           dec("3.50"),
		Costo:            dec("1.80"),
		Stock:            120,
		StockMinimo:      20,
		FechaVencimiento: &fecha,
	})
	require.NoError(t, err)

	assert.Equal(t, "Analgésicos", resp.CategoriaNombre)
	assert.Equal(t, "Droguería del Centro", resp.ProveedorNombre)
	assert.True(t, resp.Activo)
	assert.Equal(t, 120, resp.Stock)
	require.Len(t, productoRepo.productos, 1)
}

func TestProductoCrearCategoriaInexistente(t *testing.T) {
	svc, _, categoriaRepo, proveedorRepo := newProductoFixture()
	_, prov := seedRefs(categoriaRepo, proveedorRepo)

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Sin Categoría",
		CategoriaID: uuid.NewString(),
		ProveedorID: prov.ID.String(),
		Precio:      dec("1.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categoría")
}

func TestProductoActualizarNoTocaStock(t *testing.T) {
	svc, productoRepo, categoriaRepo, proveedorRepo := newProductoFixture()
	seedRefs(categoriaRepo, proveedorRepo)
	p := seedProducto(productoRepo, "Ibuprofeno 400mg", "4.20", 80, 15)

	nombre := "Ibuprofeno 400mg x10"
	precio := dec("4.50")
	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{
		Nombre: &nombre,
		Precio: &precio,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ibuprofeno 400mg x10", resp.Nombre)
	assert.True(t, resp.Precio.Equal(dec("4.50")))
	// stock is only writable through movements and sales
	assert.Equal(t, 80, resp.Stock)
}

func TestProductoDesactivar(t *testing.T) {
	svc, productoRepo, _, _ := newProductoFixture()
	p := seedProducto(productoRepo, "Retirable", "1.00", 10, 2)

	require.NoError(t, svc.Desactivar(context.Background(), p.ID))
	assert.False(t, p.Activo)

	// the row survives soft delete: movement history stays resolvable
	_, err := svc.ObtenerPorID(context.Background(), p.ID)
	assert.NoError(t, err)
}

func TestProductoNombresNAConReferenciaColgante(t *testing.T) {
	svc, productoRepo, categoriaRepo, proveedorRepo := newProductoFixture()
	cat, prov := seedRefs(categoriaRepo, proveedorRepo)
	p := seedProducto(productoRepo, "Huérfano", "2.00", 5, 1)
	p.CategoriaID = cat.ID
	p.ProveedorID = prov.ID

	// the category is deleted after the product referenced it
	delete(categoriaRepo.categorias, cat.ID)

	resp, err := svc.ObtenerPorID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "N/A", resp.CategoriaNombre)
	assert.Equal(t, "Droguería del Centro", resp.ProveedorNombre)
}

func TestProductoObtenerInexistente(t *testing.T) {
	svc, _, _, _ := newProductoFixture()
	_, err := svc.ObtenerPorID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}
