package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fragmentSepRe = regexp.MustCompile(`[,;\n]+`)
	qtyXRe        = regexp.MustCompile(`(?i)x\s*(\d+)`)
	qtyBareRe     = regexp.MustCompile(`(?i)(\d+)\s*(?:unidades|unid|u)?\b`)
	spacesRe      = regexp.MustCompile(`\s+`)
)

// SplitFragments separa el texto en fragmentos por coma, punto y coma o salto
// de línea. Los segmentos vacíos se descartan; si no queda nada, el texto
// entero (trimmed) es el único fragmento.
func SplitFragments(text string) []string {
	var parts []string
	for _, p := range fragmentSepRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return parts
}

// ExtractQuantity busca la cantidad embebida en un fragmento. Primero el
// patrón "x3"/"x 3"; si no está, un número suelto con unidad opcional
// ("2", "2 u", "2 unidades"). El token encontrado se quita del fragmento y el
// resto vuelve con los espacios colapsados. Sin patrón, la cantidad es 1.
func ExtractQuantity(fragment string) (string, int) {
	qty := 1
	if loc := qtyXRe.FindStringSubmatchIndex(fragment); loc != nil {
		qty = parseQty(fragment[loc[2]:loc[3]])
		fragment = fragment[:loc[0]] + fragment[loc[1]:]
	} else if loc := qtyBareRe.FindStringSubmatchIndex(fragment); loc != nil {
		qty = parseQty(fragment[loc[2]:loc[3]])
		fragment = fragment[:loc[0]] + fragment[loc[1]:]
	}
	cleaned := strings.TrimSpace(spacesRe.ReplaceAllString(fragment, " "))
	return cleaned, qty
}

func parseQty(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
