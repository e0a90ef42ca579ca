package repository

import (
	"context"
	"errors"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
)

// ErrSessionNotFound no hay flujo activo para el chat
var ErrSessionNotFound = errors.New("sesión no encontrada")

// SessionRepository almacenamiento de sesiones conversacionales, una por chat
type SessionRepository interface {
	// Get devuelve la sesión activa del chat o ErrSessionNotFound
	Get(ctx context.Context, chatID int64) (*entity.Session, error)

	// Save crea o actualiza la sesión
	Save(ctx context.Context, session *entity.Session) error

	// Delete elimina la sesión del chat (no-op si no existe)
	Delete(ctx context.Context, chatID int64) error
}
