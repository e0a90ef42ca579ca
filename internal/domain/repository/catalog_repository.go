package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
)

// CatalogRepository acceso de solo lectura al catálogo de productos
type CatalogRepository interface {
	// FetchCatalog obtiene la lista completa de productos, en el orden de la fuente
	FetchCatalog(ctx context.Context) ([]entity.CatalogEntry, error)
}

// CatalogError la fuente del catálogo no está disponible o no tiene filas
// válidas. Falla el turno actual pero no corrompe la sesión.
type CatalogError struct {
	Reason string
	Err    error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catálogo: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("catálogo: %s", e.Reason)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}
