package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
	"github.com/yourusername/presupuestos-bot/internal/usecase"
)

// DocumentRenderer genera los PDFs finales a partir de la lista congelada
type DocumentRenderer interface {
	RenderQuote(id, clientName string, items []entity.LineItem, discountPercent float64) ([]byte, error)
	RenderDeliveryNote(id, clientName string, items []entity.LineItem) ([]byte, error)
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot      *tgbotapi.BotAPI
	resolver *usecase.ResolveUseCase
	catalogs repository.CatalogRepository
	sessions repository.SessionRepository
	renderer DocumentRenderer
	turns    *turnPool
}

// NewBotHandler crea el handler con sus dependencias inyectadas
func NewBotHandler(
	token string,
	resolver *usecase.ResolveUseCase,
	catalogs repository.CatalogRepository,
	sessions repository.SessionRepository,
	renderer DocumentRenderer,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	handler := &BotHandler{
		bot:      bot,
		resolver: resolver,
		catalogs: catalogs,
		sessions: sessions,
		renderer: renderer,
	}
	handler.turns = newTurnPool(handler, defaultWorkerCount)
	return handler, nil
}

// GetBotUsername returns the bot's username from Telegram API state.
func (h *BotHandler) GetBotUsername() string {
	return h.bot.Self.UserName
}

// Start long polling hasta que el contexto se cancele
func (h *BotHandler) Start(ctx context.Context) error {
	h.turns.start(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			h.dispatch(ctx, update.Message)
		}
	}
}

func (h *BotHandler) dispatch(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}
	text := message.Text
	if text == "" {
		return
	}
	if !h.turns.enqueue(ctx, message.Chat.ID, text) {
		h.sendMessage(message.Chat.ID, "⏳ Todavía estoy procesando tu mensaje anterior. Esperá un momento.")
	}
}

func (h *BotHandler) getHelpMessage() string {
	return "Bot de *Presupuestos & Remitos* (catálogo solo lectura).\n\n" +
		"Comandos:\n" +
		"• /presupuesto → cliente → ítems → revisión → % desc → PDF\n" +
		"• /remito → cliente → ítems → revisión → PDF sin precios\n" +
		"• /cancelar → abandona el flujo actual\n\n" +
		"Ítems ejemplos:\n" +
		"• Natural: `2 pantalones cargo 42 verde, remera negra L x1`\n" +
		"• También entiende líneas separadas, y avisa si no encuentra coincidencias."
}
