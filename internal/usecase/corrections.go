package usecase

import (
	"regexp"
	"strings"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
)

var removalRe = regexp.MustCompile(`(?i)^\s*(?:eliminar|quitar|sacar)\s+(.+)$`)

// ApplyCorrections aplica un lote de ediciones sobre la lista tentativa de
// ítems. Cada línea del texto es o una eliminación ("eliminar remera negra")
// o un alta/actualización ("remera negra x3"). Es una función pura: devuelve
// una lista nueva y no toca el catálogo.
//
// Reglas:
//   - eliminación: se quita el ítem existente más parecido a la descripción,
//     sin piso de confianza; contra lista vacía es no-op.
//   - alta/actualización: se extrae cantidad y se matchea contra el catálogo
//     completo; si ya hay un ítem con el mismo nombre (case-insensitive) se le
//     pisa la cantidad sin moverlo de lugar, si no se agrega al final.
//   - línea sin match en el catálogo: se ignora en silencio.
func ApplyCorrections(items []entity.LineItem, editText string, catalog []entity.CatalogEntry) []entity.LineItem {
	updated := append([]entity.LineItem(nil), items...)

	for _, line := range SplitFragments(editText) {
		if m := removalRe.FindStringSubmatch(line); m != nil {
			if idx := closestItemIndex(m[1], updated); idx >= 0 {
				updated = append(updated[:idx], updated[idx+1:]...)
			}
			continue
		}

		cleaned, qty := ExtractQuantity(line)
		if cleaned == "" {
			continue
		}
		entry, ok := BestMatch(cleaned, catalog)
		if !ok {
			continue
		}
		if idx := itemIndexByName(updated, entry.Name); idx >= 0 {
			updated[idx].Quantity = qty
		} else {
			updated = append(updated, entity.LineItem{Entry: entry, Quantity: qty})
		}
	}
	return updated
}

func itemIndexByName(items []entity.LineItem, name string) int {
	for i, it := range items {
		if strings.EqualFold(it.Entry.Name, name) {
			return i
		}
	}
	return -1
}
