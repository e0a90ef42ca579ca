package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
)

func buildPostgresDSNFromEnv() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	user := strings.TrimSpace(os.Getenv("POSTGRES_USER"))
	password := os.Getenv("POSTGRES_PASSWORD")
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	port := strings.TrimSpace(os.Getenv("POSTGRES_PORT"))
	sslmode := strings.TrimSpace(os.Getenv("POSTGRES_SSLMODE"))

	if host == "" || user == "" || db == "" {
		return ""
	}
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	db = strings.TrimPrefix(db, "/")
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + db,
	}
	if password == "" {
		u.User = url.User(user)
	} else {
		u.User = url.UserPassword(user, password)
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}

type postgresSessionRepository struct {
	db  *sql.DB
	ttl time.Duration
}

// NewPostgresSessionRepository store de sesiones persistente. El estado
// completo de la sesión viaja como JSON; el TTL se aplica en la lectura.
func NewPostgresSessionRepository(dsn string, ttl time.Duration) (repository.SessionRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS sesiones (
	chat_id BIGINT PRIMARY KEY,
	id UUID NOT NULL,
	estado JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create sesiones table: %w", err)
	}

	return &postgresSessionRepository{db: db, ttl: ttl}, nil
}

func (p *postgresSessionRepository) Get(ctx context.Context, chatID int64) (*entity.Session, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT estado, updated_at FROM sesiones WHERE chat_id=$1`, chatID)

	var raw []byte
	var updatedAt time.Time
	if err := row.Scan(&raw, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrSessionNotFound
		}
		return nil, err
	}

	if p.ttl > 0 && time.Since(updatedAt) > p.ttl {
		_ = p.Delete(ctx, chatID)
		return nil, repository.ErrSessionNotFound
	}

	var session entity.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal sesión: %w", err)
	}
	return &session, nil
}

func (p *postgresSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal sesión: %w", err)
	}
	_, err = p.db.ExecContext(ctx, `
	INSERT INTO sesiones (chat_id, id, estado, updated_at)
	VALUES ($1,$2,$3,$4)
	ON CONFLICT (chat_id) DO UPDATE SET
		estado=EXCLUDED.estado,
		updated_at=EXCLUDED.updated_at
	`, session.ChatID, uuid.NewString(), raw, session.UpdatedAt)
	return err
}

func (p *postgresSessionRepository) Delete(ctx context.Context, chatID int64) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM sesiones WHERE chat_id=$1`, chatID)
	return err
}

// NewSessionRepositoryFromEnv DSN configurado -> Postgres, si no -> memoria
func NewSessionRepositoryFromEnv(ttl time.Duration) repository.SessionRepository {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		dsn = buildPostgresDSNFromEnv()
	}
	if dsn == "" {
		return NewMemorySessionRepository(ttl)
	}
	store, err := NewPostgresSessionRepository(dsn, ttl)
	if err != nil {
		log.Printf("sesiones: Postgres no disponible, uso memoria: %v", err)
		return NewMemorySessionRepository(ttl)
	}
	return store
}
