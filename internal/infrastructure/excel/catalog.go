package excel

import (
	"context"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
)

const catalogSheet = "Productos"

type catalogRepository struct {
	path string
}

// NewCatalogRepository catálogo sobre un .xlsx local con la misma pestaña
// Producto | Precio que la planilla online. Pensado para correr sin red.
func NewCatalogRepository(path string) repository.CatalogRepository {
	return &catalogRepository{path: path}
}

func (r *catalogRepository) FetchCatalog(ctx context.Context) ([]entity.CatalogEntry, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, &repository.CatalogError{Reason: "no se pudo abrir el archivo de catálogo", Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(catalogSheet)
	if err != nil {
		return nil, &repository.CatalogError{Reason: "falta la pestaña 'Productos'", Err: err}
	}

	var catalog []entity.CatalogEntry
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		if i == 0 && strings.EqualFold(name, "Producto") {
			continue
		}
		rawPrice := ""
		if len(row) > 1 {
			rawPrice = row[1]
		}
		price, ok := entity.ParsePrice(rawPrice)
		if !ok {
			log.Printf("⚠️ precio no interpretable para %q: %q (queda en 0.0)", name, rawPrice)
		}
		catalog = append(catalog, entity.CatalogEntry{Name: name, UnitPrice: price})
	}

	if len(catalog) == 0 {
		return nil, &repository.CatalogError{Reason: "el archivo de catálogo no tiene filas válidas"}
	}
	return catalog, nil
}
