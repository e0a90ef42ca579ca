package sheets

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
)

// Pestaña y columnas esperadas: Producto | Precio
const catalogRange = "Productos!A:B"

type catalogRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

// NewCatalogRepository catálogo de solo lectura sobre Google Sheets,
// autenticado con un service account
func NewCatalogRepository(ctx context.Context, credentialsPath, spreadsheetID string) (repository.CatalogRepository, error) {
	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &catalogRepository{service: service, spreadsheetID: spreadsheetID}, nil
}

// FetchCatalog lee la pestaña Productos completa. Filas sin nombre se
// descartan; precios no interpretables quedan en 0.0 y se loguean como
// problema de calidad de datos.
func (r *catalogRepository) FetchCatalog(ctx context.Context) ([]entity.CatalogEntry, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, catalogRange).Context(ctx).Do()
	if err != nil {
		return nil, &repository.CatalogError{Reason: "no se pudo leer la pestaña 'Productos'", Err: err}
	}

	var catalog []entity.CatalogEntry
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(fmt.Sprint(row[0]))
		if name == "" {
			continue
		}
		if i == 0 && strings.EqualFold(name, "Producto") {
			continue
		}
		rawPrice := ""
		if len(row) > 1 {
			rawPrice = fmt.Sprint(row[1])
		}
		price, ok := entity.ParsePrice(rawPrice)
		if !ok {
			log.Printf("⚠️ precio no interpretable para %q: %q (queda en 0.0)", name, rawPrice)
		}
		catalog = append(catalog, entity.CatalogEntry{Name: name, UnitPrice: price})
	}

	if len(catalog) == 0 {
		return nil, &repository.CatalogError{Reason: "la pestaña 'Productos' está vacía o sin filas válidas"}
	}
	return catalog, nil
}
