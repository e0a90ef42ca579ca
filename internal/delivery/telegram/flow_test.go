package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
	"github.com/yourusername/presupuestos-bot/internal/infrastructure/storage"
	"github.com/yourusername/presupuestos-bot/internal/usecase"
)

type stubCatalogRepo struct {
	catalog []entity.CatalogEntry
	err     error
	fetches int
}

func (s *stubCatalogRepo) FetchCatalog(ctx context.Context) ([]entity.CatalogEntry, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.catalog, nil
}

type renderCall struct {
	kind     entity.DocumentKind
	id       string
	client   string
	items    []entity.LineItem
	discount float64
}

type stubRenderer struct {
	calls []renderCall
	err   error
}

func (s *stubRenderer) RenderQuote(id, clientName string, items []entity.LineItem, discountPercent float64) ([]byte, error) {
	s.calls = append(s.calls, renderCall{entity.DocumentPresupuesto, id, clientName, items, discountPercent})
	return []byte("%PDF"), s.err
}

func (s *stubRenderer) RenderDeliveryNote(id, clientName string, items []entity.LineItem) ([]byte, error) {
	s.calls = append(s.calls, renderCall{entity.DocumentRemito, id, clientName, items, 0})
	return []byte("%PDF"), s.err
}

func catalogoDePrueba() []entity.CatalogEntry {
	return []entity.CatalogEntry{
		{Name: "Pantalon Cargo 42 Verde", UnitPrice: 18000},
		{Name: "Remera Negra L", UnitPrice: 7500},
	}
}

// handler de prueba sin bot real: los sends se descartan
func newTestHandler(catalogs *stubCatalogRepo, renderer *stubRenderer) *BotHandler {
	return &BotHandler{
		resolver: usecase.NewResolveUseCase(nil),
		catalogs: catalogs,
		sessions: storage.NewMemorySessionRepository(time.Hour),
		renderer: renderer,
	}
}

func (h *BotHandler) mustSession(t *testing.T, chatID int64) *entity.Session {
	t.Helper()
	session, err := h.sessions.Get(context.Background(), chatID)
	if err != nil {
		t.Fatalf("sesión no encontrada: %v", err)
	}
	return session
}

func startSession(t *testing.T, h *BotHandler, chatID int64, kind entity.DocumentKind) {
	t.Helper()
	err := h.sessions.Save(context.Background(), &entity.Session{
		ChatID: chatID,
		Kind:   kind,
		Phase:  entity.PhaseAwaitClient,
	})
	if err != nil {
		t.Fatalf("no se pudo crear la sesión: %v", err)
	}
}

// TestFlujoPresupuestoCompleto - cliente → ítems → correcciones → ok →
// descuento → render, con el catálogo cacheado en la sesión
func TestFlujoPresupuestoCompleto(t *testing.T) {
	ctx := context.Background()
	catalogs := &stubCatalogRepo{catalog: catalogoDePrueba()}
	renderer := &stubRenderer{}
	h := newTestHandler(catalogs, renderer)
	const chatID = int64(77)

	startSession(t, h, chatID, entity.DocumentPresupuesto)

	h.handleText(ctx, chatID, "Juan Pérez")
	session := h.mustSession(t, chatID)
	if session.Phase != entity.PhaseAwaitItems || session.ClientName != "Juan Pérez" {
		t.Fatalf("tras el cliente: fase=%s cliente=%q", session.Phase, session.ClientName)
	}

	h.handleText(ctx, chatID, "2 pantalones cargo 42 verde, remera negra L x1")
	session = h.mustSession(t, chatID)
	if session.Phase != entity.PhaseAwaitReview {
		t.Fatalf("tras los ítems: fase=%s", session.Phase)
	}
	if len(session.Items) != 2 {
		t.Fatalf("items = %d, esperado 2", len(session.Items))
	}
	if catalogs.fetches != 1 {
		t.Fatalf("fetches = %d, esperado 1", catalogs.fetches)
	}

	// Corrección: sigue en revisión y no vuelve a pedir el catálogo
	h.handleText(ctx, chatID, "remera negra l x3")
	session = h.mustSession(t, chatID)
	if session.Phase != entity.PhaseAwaitReview {
		t.Fatalf("tras corregir: fase=%s", session.Phase)
	}
	if session.Items[1].Quantity != 3 {
		t.Fatalf("cantidad corregida = %d, esperado 3", session.Items[1].Quantity)
	}
	if catalogs.fetches != 1 {
		t.Fatalf("la corrección volvió a pedir el catálogo (fetches=%d)", catalogs.fetches)
	}

	h.handleText(ctx, chatID, "ok")
	session = h.mustSession(t, chatID)
	if session.Phase != entity.PhaseAwaitDiscount {
		t.Fatalf("tras confirmar: fase=%s", session.Phase)
	}

	// Descuento inválido: re-pregunta sin avanzar
	h.handleText(ctx, chatID, "ciento veinte")
	if got := h.mustSession(t, chatID).Phase; got != entity.PhaseAwaitDiscount {
		t.Fatalf("descuento inválido avanzó la fase: %s", got)
	}

	h.handleText(ctx, chatID, "10")

	if len(renderer.calls) != 1 {
		t.Fatalf("render calls = %d, esperado 1", len(renderer.calls))
	}
	call := renderer.calls[0]
	if call.kind != entity.DocumentPresupuesto || call.client != "Juan Pérez" || call.discount != 10 {
		t.Fatalf("render inesperado: %+v", call)
	}
	if len(call.items) != 2 || call.items[0].Quantity != 2 || call.items[1].Quantity != 3 {
		t.Fatalf("items renderizados: %+v", call.items)
	}

	// La sesión se limpia al finalizar
	if _, err := h.sessions.Get(ctx, chatID); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Fatalf("la sesión no se limpió: %v", err)
	}
}

// TestFlujoRemitoSinDescuento - el remito salta la fase de descuento
func TestFlujoRemitoSinDescuento(t *testing.T) {
	ctx := context.Background()
	renderer := &stubRenderer{}
	h := newTestHandler(&stubCatalogRepo{catalog: catalogoDePrueba()}, renderer)
	const chatID = int64(78)

	startSession(t, h, chatID, entity.DocumentRemito)
	h.handleText(ctx, chatID, "Cliente Remito")
	h.handleText(ctx, chatID, "remera negra l x4")
	h.handleText(ctx, chatID, "listo")

	if len(renderer.calls) != 1 || renderer.calls[0].kind != entity.DocumentRemito {
		t.Fatalf("render calls = %+v", renderer.calls)
	}
	if _, err := h.sessions.Get(ctx, chatID); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Fatal("la sesión no se limpió tras el remito")
	}
}

// TestItemsSinResolver - cero ítems mantiene la fase y no renderiza
func TestItemsSinResolver(t *testing.T) {
	ctx := context.Background()
	renderer := &stubRenderer{}
	h := newTestHandler(&stubCatalogRepo{catalog: catalogoDePrueba()}, renderer)
	const chatID = int64(79)

	startSession(t, h, chatID, entity.DocumentPresupuesto)
	h.handleText(ctx, chatID, "Cliente X")
	h.handleText(ctx, chatID, "zzzz qqqq pppp")

	if got := h.mustSession(t, chatID).Phase; got != entity.PhaseAwaitItems {
		t.Fatalf("fase = %s, esperado AWAIT_ITEMS", got)
	}
	if len(renderer.calls) != 0 {
		t.Fatal("no debía renderizar nada")
	}
}

// TestCatalogoCaido - el turno falla pero la sesión queda intacta para
// reintentar
func TestCatalogoCaido(t *testing.T) {
	ctx := context.Background()
	catalogs := &stubCatalogRepo{err: &repository.CatalogError{Reason: "sin conexión"}}
	h := newTestHandler(catalogs, &stubRenderer{})
	const chatID = int64(80)

	startSession(t, h, chatID, entity.DocumentPresupuesto)
	h.handleText(ctx, chatID, "Cliente Y")
	h.handleText(ctx, chatID, "remera negra l")

	session := h.mustSession(t, chatID)
	if session.Phase != entity.PhaseAwaitItems {
		t.Fatalf("fase = %s, la sesión debía quedar en AWAIT_ITEMS", session.Phase)
	}

	// El mismo turno funciona cuando el catálogo vuelve
	catalogs.err = nil
	catalogs.catalog = catalogoDePrueba()
	h.handleText(ctx, chatID, "remera negra l")
	if got := h.mustSession(t, chatID).Phase; got != entity.PhaseAwaitReview {
		t.Fatalf("fase tras reintento = %s", got)
	}
}

// TestSinFlujoActivo - texto sin sesión no crea estado
func TestSinFlujoActivo(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(&stubCatalogRepo{catalog: catalogoDePrueba()}, &stubRenderer{})

	h.handleText(ctx, 81, "hola")
	if _, err := h.sessions.Get(ctx, 81); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Fatal("no debía existir sesión")
	}
}

// TestConfirmacionesAceptadas - tokens afirmativos, case-insensitive
func TestConfirmacionesAceptadas(t *testing.T) {
	for _, token := range []string{"ok", "OK", " Listo ", "confirmar", "sí", "si"} {
		if !isAffirmation(token) {
			t.Errorf("isAffirmation(%q) = false", token)
		}
	}
	for _, token := range []string{"no", "okey", "eliminar remera"} {
		if isAffirmation(token) {
			t.Errorf("isAffirmation(%q) = true", token)
		}
	}
}
