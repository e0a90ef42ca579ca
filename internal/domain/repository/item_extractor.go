package repository

import (
	"context"
	"errors"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
)

// ErrExtractorUnavailable el extractor alternativo no pudo producir candidatos
// (timeout, salida malformada, credenciales ausentes). Nunca llega al usuario:
// el pipeline cae al parser determinístico.
var ErrExtractorUnavailable = errors.New("extractor no disponible")

// ItemExtractor extractor alternativo de ítems (best-effort, opcional)
type ItemExtractor interface {
	// ExtractItems devuelve candidatos {descripcion, cantidad} para un texto
	// libre, o ErrExtractorUnavailable
	ExtractItems(ctx context.Context, text string) ([]entity.ExtractedItem, error)
}
