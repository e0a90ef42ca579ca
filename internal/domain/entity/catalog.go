package entity

import (
	"strconv"
	"strings"
)

// CatalogEntry una fila del catálogo de productos (solo lectura)
type CatalogEntry struct {
	Name      string  `json:"producto"`
	UnitPrice float64 `json:"precio"`
}

// LineItem un ítem resuelto contra el catálogo
type LineItem struct {
	Entry    CatalogEntry `json:"entry"`
	Quantity int          `json:"cantidad"`
}

// ParseWarning fragmento que no se pudo resolver contra el catálogo.
// Es informativo: nunca bloquea la resolución de los demás fragmentos.
type ParseWarning struct {
	OriginalFragment string `json:"fragmento"`
}

// ExtractedItem candidato devuelto por un extractor alternativo (IA)
type ExtractedItem struct {
	Description string `json:"descripcion"`
	Quantity    int    `json:"cantidad"`
}

// ParsePrice convierte el texto de la columna Precio a float64.
// Acepta el formato "1.234,56" (punto de miles, coma decimal) además del
// decimal con punto. Devuelve ok=false cuando el valor no se pudo interpretar;
// en ese caso el precio queda en 0.0 (regla de coerción tolerante, la fila
// no se descarta).
func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
