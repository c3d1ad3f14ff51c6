package service

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNoEncontrado marks lookups that found nothing. Handlers map it to 404.
var ErrNoEncontrado = errors.New("recurso no encontrado")

// Actor identifies the authenticated user performing a mutation. Sales and
// movements snapshot both fields; the token that carried them comes from the
// external identity service.
type Actor struct {
	ID     uuid.UUID
	Nombre string
}
