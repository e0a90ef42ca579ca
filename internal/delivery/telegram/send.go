package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sendMessage texto con Markdown; con bot nil (tests) no hace nada
func (h *BotHandler) sendMessage(chatID int64, text string) {
	if h.bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(msg); err != nil {
		// Markdown inválido en contenido de usuario: reintento en texto plano
		msg.ParseMode = ""
		if _, err := h.bot.Send(msg); err != nil {
			log.Printf("❌ no se pudo enviar mensaje al chat %d: %v", chatID, err)
		}
	}
}

// sendDocument envía un PDF como adjunto
func (h *BotHandler) sendDocument(chatID int64, filename string, data []byte, caption string) error {
	if h.bot == nil {
		return nil
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	_, err := h.bot.Send(doc)
	return err
}

func logTurnError(chatID int64, msg string, err error) {
	log.Printf("❌ chat %d: %s: %v", chatID, msg, err)
}
