package entity

import "time"

// DocumentKind tipo de documento que genera el flujo
type DocumentKind string

const (
	DocumentPresupuesto DocumentKind = "PRESUPUESTO"
	DocumentRemito      DocumentKind = "REMITO"
)

// SessionPhase fase del flujo conversacional
type SessionPhase string

const (
	PhaseAwaitClient   SessionPhase = "AWAIT_CLIENT"
	PhaseAwaitItems    SessionPhase = "AWAIT_ITEMS"
	PhaseAwaitReview   SessionPhase = "AWAIT_REVIEW"
	PhaseAwaitDiscount SessionPhase = "AWAIT_DISCOUNT"
)

// Session estado de una conversación activa, una por chat.
// Catalog es la foto del catálogo tomada al entrar los ítems; se reutiliza
// durante todo el ciclo de correcciones para que las ediciones sean
// consistentes con lo que ya se resolvió.
type Session struct {
	ChatID          int64          `json:"chat_id"`
	Kind            DocumentKind   `json:"tipo"`
	Phase           SessionPhase   `json:"fase"`
	ClientName      string         `json:"cliente"`
	Items           []LineItem     `json:"items"`
	DiscountPercent float64        `json:"descuento"`
	Catalog         []CatalogEntry `json:"catalogo,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
