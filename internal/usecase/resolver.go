package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
)

// ResolveUseCase convierte un mensaje libre en ítems (producto, cantidad).
// Si hay un extractor IA configurado se intenta primero; ante cualquier falla
// o salida vacía cae al parser determinístico. Los candidatos de la IA pasan
// igual por el matcher del catálogo.
type ResolveUseCase struct {
	extractor repository.ItemExtractor // nil cuando no hay IA configurada
}

// NewResolveUseCase crea el pipeline de resolución de ítems
func NewResolveUseCase(extractor repository.ItemExtractor) *ResolveUseCase {
	return &ResolveUseCase{extractor: extractor}
}

// Resolve nunca devuelve error: los fragmentos que no se entienden quedan como
// warnings y el resto se resuelve igual. Un texto vacío produce ambos slices
// vacíos; el llamador decide cómo re-preguntar.
func (u *ResolveUseCase) Resolve(ctx context.Context, text string, catalog []entity.CatalogEntry) ([]entity.LineItem, []entity.ParseWarning) {
	if candidates, ok := u.tryExtractor(ctx, text); ok {
		return matchCandidates(candidates, catalog)
	}
	return resolveFragments(text, catalog)
}

func (u *ResolveUseCase) tryExtractor(ctx context.Context, text string) ([]entity.ExtractedItem, bool) {
	if u.extractor == nil {
		return nil, false
	}
	candidates, err := u.extractor.ExtractItems(ctx, text)
	if err != nil {
		log.Printf("extractor IA no disponible, uso parser natural: %v", err)
		return nil, false
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates, true
}

func matchCandidates(candidates []entity.ExtractedItem, catalog []entity.CatalogEntry) ([]entity.LineItem, []entity.ParseWarning) {
	var items []entity.LineItem
	var warnings []entity.ParseWarning
	for _, cand := range candidates {
		desc := strings.TrimSpace(cand.Description)
		if desc == "" {
			continue
		}
		qty := cand.Quantity
		if qty < 1 {
			qty = 1
		}
		if entry, ok := BestMatch(desc, catalog); ok {
			items = append(items, entity.LineItem{Entry: entry, Quantity: qty})
		} else {
			warnings = append(warnings, entity.ParseWarning{OriginalFragment: desc})
		}
	}
	return items, warnings
}

func resolveFragments(text string, catalog []entity.CatalogEntry) ([]entity.LineItem, []entity.ParseWarning) {
	var items []entity.LineItem
	var warnings []entity.ParseWarning

	fragments := SplitFragments(text)
	for _, fragment := range fragments {
		cleaned, qty := ExtractQuantity(fragment)
		if cleaned == "" {
			// Fragmento puramente numérico. Entre varios fragmentos se ignora;
			// si era el único, se avisa para que el usuario reciba algo.
			if len(fragments) == 1 && strings.TrimSpace(fragment) != "" {
				warnings = append(warnings, entity.ParseWarning{OriginalFragment: fragment})
			}
			continue
		}
		if entry, ok := BestMatch(cleaned, catalog); ok {
			items = append(items, entity.LineItem{Entry: entry, Quantity: qty})
		} else {
			warnings = append(warnings, entity.ParseWarning{OriginalFragment: fragment})
		}
	}
	return items, warnings
}
