package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
	"github.com/yourusername/presupuestos-bot/internal/usecase"
)

// Tokens que confirman la lista en la fase de revisión
var affirmations = map[string]bool{
	"ok":        true,
	"listo":     true,
	"confirmar": true,
	"sí":        true,
	"si":        true,
}

func isAffirmation(text string) bool {
	return affirmations[strings.ToLower(strings.TrimSpace(text))]
}

// handleText avanza la máquina de estados de la sesión con el texto recibido.
// Sin flujo activo responde la ayuda estática y no cambia nada.
func (h *BotHandler) handleText(ctx context.Context, chatID int64, text string) {
	session, err := h.sessions.Get(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			h.sendMessage(chatID, "Usá /presupuesto o /remito.")
			return
		}
		logTurnError(chatID, "no se pudo leer la sesión", err)
		h.sendMessage(chatID, "⚠️ Error interno. Probá de nuevo.")
		return
	}

	switch session.Phase {
	case entity.PhaseAwaitClient:
		h.handleClientName(ctx, session, text)
	case entity.PhaseAwaitItems:
		h.handleItems(ctx, session, text)
	case entity.PhaseAwaitReview:
		h.handleReview(ctx, session, text)
	case entity.PhaseAwaitDiscount:
		h.handleDiscount(ctx, session, text)
	default:
		logTurnError(chatID, "fase desconocida", fmt.Errorf("%q", session.Phase))
		h.sendMessage(chatID, "⚠️ Error interno. /cancelar y empezá de nuevo.")
	}
}

// handleClientName cualquier texto no vacío es el nombre del cliente, tal cual
func (h *BotHandler) handleClientName(ctx context.Context, session *entity.Session, text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		h.sendMessage(session.ChatID, "Decime el nombre del cliente:")
		return
	}
	session.ClientName = name
	session.Phase = entity.PhaseAwaitItems
	if err := h.sessions.Save(ctx, session); err != nil {
		logTurnError(session.ChatID, "no se pudo guardar la sesión", err)
		h.sendMessage(session.ChatID, "⚠️ Error interno. Probá de nuevo.")
		return
	}
	h.sendMessage(session.ChatID,
		"Enviá los *ítems* (natural, separados por coma o renglón). Ej: `2 pantalones cargo 42 verde, remera negra L x1`")
}

// handleItems resuelve el mensaje completo contra el catálogo. Cero ítems
// resueltos no es un error terminal: se muestran los warnings y se re-pregunta.
func (h *BotHandler) handleItems(ctx context.Context, session *entity.Session, text string) {
	catalog := session.Catalog
	if len(catalog) == 0 {
		fetched, err := h.catalogs.FetchCatalog(ctx)
		if err != nil {
			logTurnError(session.ChatID, "catálogo no disponible", err)
			h.sendMessage(session.ChatID, "⚠️ No pude leer el catálogo. Probá de nuevo en un rato.")
			return
		}
		catalog = fetched
	}

	items, warnings := h.resolver.Resolve(ctx, text, catalog)
	if len(items) == 0 {
		reply := "No pude entender los ítems."
		if len(warnings) > 0 {
			reply = formatWarnings(warnings)
		}
		h.sendMessage(session.ChatID, reply+"\nProbá afinar la descripción.")
		return
	}

	session.Items = items
	session.Catalog = catalog
	session.Phase = entity.PhaseAwaitReview
	if err := h.sessions.Save(ctx, session); err != nil {
		logTurnError(session.ChatID, "no se pudo guardar la sesión", err)
		h.sendMessage(session.ChatID, "⚠️ Error interno. Probá de nuevo.")
		return
	}

	reply := "Ítems entendidos:\n" + formatItems(items)
	if len(warnings) > 0 {
		reply += "\n\n" + formatWarnings(warnings)
	}
	reply += "\n\n¿Está bien la lista? Respondé *ok* para confirmar, o mandá correcciones " +
		"(ej: `eliminar remera negra`, `remera negra x3`)."
	h.sendMessage(session.ChatID, reply)
}

// handleReview confirmación o lote de correcciones; las correcciones
// re-muestran la lista y se queda en revisión
func (h *BotHandler) handleReview(ctx context.Context, session *entity.Session, text string) {
	if !isAffirmation(text) {
		session.Items = usecase.ApplyCorrections(session.Items, text, session.Catalog)
		if err := h.sessions.Save(ctx, session); err != nil {
			logTurnError(session.ChatID, "no se pudo guardar la sesión", err)
			h.sendMessage(session.ChatID, "⚠️ Error interno. Probá de nuevo.")
			return
		}
		if len(session.Items) == 0 {
			h.sendMessage(session.ChatID, "La lista quedó vacía. Agregá ítems o /cancelar.")
			return
		}
		h.sendMessage(session.ChatID,
			"Lista actualizada:\n"+formatItems(session.Items)+
				"\n\n¿Está bien? Respondé *ok* o seguí corrigiendo.")
		return
	}

	if len(session.Items) == 0 {
		h.sendMessage(session.ChatID, "La lista está vacía. Agregá ítems antes de confirmar.")
		return
	}

	if session.Kind == entity.DocumentPresupuesto {
		session.Phase = entity.PhaseAwaitDiscount
		if err := h.sessions.Save(ctx, session); err != nil {
			logTurnError(session.ChatID, "no se pudo guardar la sesión", err)
			h.sendMessage(session.ChatID, "⚠️ Error interno. Probá de nuevo.")
			return
		}
		h.sendMessage(session.ChatID, "¿Qué *% de descuento* aplico? (0–100)")
		return
	}

	h.finalize(ctx, session)
}

// handleDiscount número con coma o punto en [0,100]; si no, re-pregunta
func (h *BotHandler) handleDiscount(ctx context.Context, session *entity.Session, text string) {
	discount, err := usecase.ParseDiscount(text)
	if err != nil {
		h.sendMessage(session.ChatID, "Ingresá un número entre 0 y 100.")
		return
	}
	session.DiscountPercent = discount
	h.finalize(ctx, session)
}

// finalize genera el PDF, lo envía y limpia la sesión. Si el render o el
// envío fallan, la sesión queda intacta para reintentar el mismo turno.
func (h *BotHandler) finalize(ctx context.Context, session *entity.Session) {
	var (
		id       string
		filename string
		caption  string
		document []byte
		err      error
	)

	switch session.Kind {
	case entity.DocumentPresupuesto:
		id = usecase.NewDocumentID("P")
		document, err = h.renderer.RenderQuote(id, session.ClientName, session.Items, session.DiscountPercent)
		filename = "Presupuesto_" + id + ".pdf"
		caption = fmt.Sprintf("Ítems:\n%s\n\nPresupuesto %s listo ✅ (Desc: %.0f%%)",
			formatItems(session.Items), id, session.DiscountPercent)
	default:
		id = usecase.NewDocumentID("R")
		document, err = h.renderer.RenderDeliveryNote(id, session.ClientName, session.Items)
		filename = "Remito_" + id + ".pdf"
		caption = fmt.Sprintf("Ítems:\n%s\n\nRemito %s listo ✅", formatItems(session.Items), id)
	}

	if err != nil {
		logTurnError(session.ChatID, "no se pudo generar el PDF", err)
		h.sendMessage(session.ChatID, "⚠️ No pude generar el documento. Probá de nuevo.")
		return
	}
	if err := h.sendDocument(session.ChatID, filename, document, caption); err != nil {
		logTurnError(session.ChatID, "no se pudo enviar el PDF", err)
		h.sendMessage(session.ChatID, "⚠️ No pude enviar el documento. Probá de nuevo.")
		return
	}

	if err := h.sessions.Delete(ctx, session.ChatID); err != nil {
		logTurnError(session.ChatID, "no se pudo limpiar la sesión", err)
	}
}

func formatItems(items []entity.LineItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %s x %d", it.Entry.Name, it.Quantity))
	}
	return strings.Join(lines, "\n")
}

func formatWarnings(warnings []entity.ParseWarning) string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, fmt.Sprintf("⚠️ No entendí “%s”.", w.OriginalFragment))
	}
	return strings.Join(lines, "\n")
}
