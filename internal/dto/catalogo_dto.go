package dto

// DTOs for categorías, proveedores y clientes.

// ─── Categoria ───────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

// ─── Proveedor ───────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	Contacto  *string `json:"contacto"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ActualizarProveedorRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2,max=120"`
	Contacto  *string `json:"contacto"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ProveedorResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Contacto  *string `json:"contacto"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
}

// DependientesResponse is the advisory count returned before deleting a
// categoría or proveedor that products still reference.
type DependientesResponse struct {
	Dependientes int64 `json:"dependientes"`
}

// ─── Cliente ─────────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	Telefono  string  `json:"telefono"  validate:"required,min=6,max=30"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2,max=120"`
	Telefono  *string `json:"telefono"  validate:"omitempty,min=6,max=30"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Telefono  string  `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	CreatedAt string  `json:"created_at"`
}
