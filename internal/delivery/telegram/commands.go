package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
)

// handleCommand comandos del bot
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start", "help":
		h.sendMessage(chatID, h.getHelpMessage())
	case "presupuesto":
		h.startFlow(ctx, chatID, entity.DocumentPresupuesto)
	case "remito":
		h.startFlow(ctx, chatID, entity.DocumentRemito)
	case "cancelar":
		h.cancelFlow(ctx, chatID)
	default:
		h.sendMessage(chatID, "Comando desconocido. /help para ver los disponibles.")
	}
}

func (h *BotHandler) startFlow(ctx context.Context, chatID int64, kind entity.DocumentKind) {
	session := &entity.Session{
		ChatID:    chatID,
		Kind:      kind,
		Phase:     entity.PhaseAwaitClient,
		CreatedAt: time.Now(),
	}
	if err := h.sessions.Save(ctx, session); err != nil {
		logTurnError(chatID, "no se pudo crear la sesión", err)
		h.sendMessage(chatID, "⚠️ No pude iniciar el flujo. Probá de nuevo.")
		return
	}

	if kind == entity.DocumentPresupuesto {
		h.sendMessage(chatID, "Cliente del *presupuesto*:")
	} else {
		h.sendMessage(chatID, "Cliente del *remito*:")
	}
}

func (h *BotHandler) cancelFlow(ctx context.Context, chatID int64) {
	if err := h.sessions.Delete(ctx, chatID); err != nil {
		logTurnError(chatID, "no se pudo borrar la sesión", err)
	}
	h.sendMessage(chatID, "Flujo cancelado. /presupuesto o /remito para empezar de nuevo.")
}
