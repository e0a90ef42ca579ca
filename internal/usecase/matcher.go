package usecase

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/yourusername/presupuestos-bot/internal/domain/constants"
	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
)

// BestMatch busca el producto del catálogo más parecido a la consulta.
// Compara en minúsculas con WRatio (0-100) y acepta solo si el mejor puntaje
// llega al piso de confianza. El recorrido respeta el orden del catálogo: ante
// empate gana el primer candidato encontrado.
func BestMatch(query string, catalog []entity.CatalogEntry) (entity.CatalogEntry, bool) {
	entry, score := bestScored(query, catalog)
	if score < constants.MatchThreshold {
		return entity.CatalogEntry{}, false
	}
	return entry, true
}

func bestScored(query string, catalog []entity.CatalogEntry) (entity.CatalogEntry, int) {
	query = strings.ToLower(query)
	var best entity.CatalogEntry
	bestScore := -1
	for _, row := range catalog {
		score := fuzzy.WRatio(query, strings.ToLower(row.Name))
		if score > bestScore {
			bestScore = score
			best = row
		}
	}
	return best, bestScore
}

// closestItemIndex índice del ítem cuyo nombre mejor puntúa contra la
// descripción, SIN piso de confianza: una eliminación tiene que encontrar el
// ítem existente más cercano aunque el parecido sea imperfecto.
// Devuelve -1 solo con lista vacía.
func closestItemIndex(description string, items []entity.LineItem) int {
	query := strings.ToLower(description)
	bestIdx, bestScore := -1, -1
	for i, it := range items {
		if score := fuzzy.WRatio(query, strings.ToLower(it.Entry.Name)); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx
}
