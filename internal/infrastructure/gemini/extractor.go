package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yourusername/presupuestos-bot/internal/domain/constants"
	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
)

type itemExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewItemExtractor extractor alternativo de ítems sobre Gemini. Es
// estrictamente best-effort: cualquier falla se traduce a
// ErrExtractorUnavailable y el pipeline sigue por el parser natural.
func NewItemExtractor(ctx context.Context, apiKey string) (repository.ItemExtractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(constants.GeminiModelName)
	model.SetTemperature(constants.AITemperature)
	model.ResponseMIMEType = "application/json"

	return &itemExtractor{client: client, model: model}, nil
}

const extractPrompt = `Extraé los ítems de este texto de venta de indumentaria en español.
Respondé SOLO JSON con la forma {"items":[{"descripcion":"remera negra","cantidad":1}]}.
"cantidad" es un entero >= 1. Sin texto adicional.
TEXTO:
%s`

type extractPayload struct {
	Items []entity.ExtractedItem `json:"items"`
}

// ExtractItems pide a Gemini los pares {descripcion, cantidad} del texto.
func (g *itemExtractor) ExtractItems(ctx context.Context, text string) ([]entity.ExtractedItem, error) {
	prompt := fmt.Sprintf(extractPrompt, text)

	var lastErr error
	for attempt := 1; attempt <= constants.MaxRetries; attempt++ {
		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			log.Printf("❌ Gemini intento %d/%d: %v", attempt, constants.MaxRetries, err)
			if attempt < constants.MaxRetries {
				select {
				case <-ctx.Done():
					return nil, repository.ErrExtractorUnavailable
				case <-time.After(constants.RetryDelay * time.Second):
				}
			}
			continue
		}

		raw := responseText(resp)
		if strings.TrimSpace(raw) == "" {
			lastErr = fmt.Errorf("respuesta vacía")
			continue
		}

		var payload extractPayload
		if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payload); err != nil {
			log.Printf("⚠️ Gemini devolvió JSON inválido: %v", err)
			return nil, repository.ErrExtractorUnavailable
		}
		return payload.Items, nil
	}

	log.Printf("❌ extractor IA agotó los %d intentos: %v", constants.MaxRetries, lastErr)
	return nil, repository.ErrExtractorUnavailable
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
