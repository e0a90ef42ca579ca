package usecase

import (
	"context"
	"testing"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
)

type stubExtractor struct {
	items  []entity.ExtractedItem
	err    error
	called bool
}

func (s *stubExtractor) ExtractItems(ctx context.Context, text string) ([]entity.ExtractedItem, error) {
	s.called = true
	return s.items, s.err
}

// TestResolveNatural - dos fragmentos con cantidades embebidas, sin warnings
func TestResolveNatural(t *testing.T) {
	uc := NewResolveUseCase(nil)
	items, warnings := uc.Resolve(context.Background(),
		"2 pantalones cargo 42 verde, remera negra l x1", catalogoDePrueba())

	if len(warnings) != 0 {
		t.Fatalf("warnings inesperados: %v", warnings)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, esperado 2", len(items))
	}
	if items[0].Entry.Name != "Pantalon Cargo 42 Verde" || items[0].Quantity != 2 {
		t.Errorf("item 0 = %q x%d", items[0].Entry.Name, items[0].Quantity)
	}
	if items[1].Entry.Name != "Remera Negra L" || items[1].Quantity != 1 {
		t.Errorf("item 1 = %q x%d", items[1].Entry.Name, items[1].Quantity)
	}
}

// TestResolveSinMatch - fragmento irreconocible produce un warning con el
// texto original y ningún ítem
func TestResolveSinMatch(t *testing.T) {
	uc := NewResolveUseCase(nil)
	items, warnings := uc.Resolve(context.Background(), "xyzxyz123def", catalogoDePrueba())

	if len(items) != 0 {
		t.Fatalf("items inesperados: %v", items)
	}
	if len(warnings) != 1 || warnings[0].OriginalFragment != "xyzxyz123def" {
		t.Fatalf("warnings = %v, esperado el fragmento original", warnings)
	}
}

// TestResolveParcial - un fragmento malo no bloquea a los demás
func TestResolveParcial(t *testing.T) {
	uc := NewResolveUseCase(nil)
	items, warnings := uc.Resolve(context.Background(),
		"remera negra l x2, qqqwwweee", catalogoDePrueba())

	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("items = %v, esperado solo la remera x2", items)
	}
	if len(warnings) != 1 || warnings[0].OriginalFragment != "qqqwwweee" {
		t.Fatalf("warnings = %v", warnings)
	}
}

// TestResolveFragmentoVacioEntreVarios - un fragmento puramente numérico se
// ignora cuando hay otros fragmentos
func TestResolveFragmentoVacioEntreVarios(t *testing.T) {
	uc := NewResolveUseCase(nil)
	items, warnings := uc.Resolve(context.Background(),
		"remera negra l, 42", catalogoDePrueba())

	if len(items) != 1 {
		t.Fatalf("items = %v", items)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, el fragmento numérico debía ignorarse", warnings)
	}
}

// TestResolveFragmentoVacioUnico - si el único fragmento queda vacío se avisa
func TestResolveFragmentoVacioUnico(t *testing.T) {
	uc := NewResolveUseCase(nil)
	items, warnings := uc.Resolve(context.Background(), "42", catalogoDePrueba())

	if len(items) != 0 {
		t.Fatalf("items = %v", items)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, esperado uno", warnings)
	}
}

// TestResolveTextoVacio - texto vacío produce resultado vacío sin pánico
func TestResolveTextoVacio(t *testing.T) {
	uc := NewResolveUseCase(nil)
	items, warnings := uc.Resolve(context.Background(), "", catalogoDePrueba())
	if len(items) != 0 || len(warnings) != 0 {
		t.Fatalf("esperado resultado vacío, items=%v warnings=%v", items, warnings)
	}
}

// TestResolveExtractorIA - los candidatos de la IA pasan por el matcher
func TestResolveExtractorIA(t *testing.T) {
	ext := &stubExtractor{items: []entity.ExtractedItem{
		{Description: "remera negra l", Quantity: 3},
		{Description: "", Quantity: 5},
		{Description: "producto inexistente zz", Quantity: 1},
	}}
	uc := NewResolveUseCase(ext)
	items, warnings := uc.Resolve(context.Background(), "lo que sea", catalogoDePrueba())

	if !ext.called {
		t.Fatal("el extractor no fue invocado")
	}
	if len(items) != 1 || items[0].Entry.Name != "Remera Negra L" || items[0].Quantity != 3 {
		t.Fatalf("items = %v", items)
	}
	if len(warnings) != 1 || warnings[0].OriginalFragment != "producto inexistente zz" {
		t.Fatalf("warnings = %v", warnings)
	}
}

// TestResolveExtractorCaido - falla de la IA cae al parser determinístico
func TestResolveExtractorCaido(t *testing.T) {
	ext := &stubExtractor{err: repository.ErrExtractorUnavailable}
	uc := NewResolveUseCase(ext)
	items, _ := uc.Resolve(context.Background(), "remera negra l x2", catalogoDePrueba())

	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("fallback determinístico no funcionó: %v", items)
	}
}

// TestResolveDuplicadosEnUnMensaje - el mismo producto dos veces en un mensaje
// produce dos líneas; la fusión solo ocurre vía correcciones
func TestResolveDuplicadosEnUnMensaje(t *testing.T) {
	uc := NewResolveUseCase(nil)
	items, _ := uc.Resolve(context.Background(),
		"remera negra l x1, remera negra l x2", catalogoDePrueba())

	if len(items) != 2 {
		t.Fatalf("items = %d, esperado 2 líneas duplicadas", len(items))
	}
}
