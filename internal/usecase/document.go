package usecase

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
)

// DocumentTotals montos calculados para el presupuesto
type DocumentTotals struct {
	Subtotal       float64
	DiscountAmount float64
	Total          float64
}

// ComputeTotals subtotal = sum(precio * cantidad); el descuento es
// multiplicativo sobre el subtotal completo.
func ComputeTotals(items []entity.LineItem, discountPercent float64) DocumentTotals {
	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Entry.UnitPrice * float64(it.Quantity)
	}
	discount := subtotal * discountPercent / 100.0
	return DocumentTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}
}

// ParseDiscount interpreta el porcentaje de descuento ingresado por el
// usuario. Acepta coma o punto decimal y exige un valor en [0, 100].
func ParseDiscount(text string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	s = strings.TrimSuffix(s, "%")
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("descuento inválido: %q", text)
	}
	if d < 0 || d > 100 {
		return 0, fmt.Errorf("descuento fuera de rango: %v", d)
	}
	return d, nil
}

// NewDocumentID genera "{prefijo}-{YYYYMMDD-HHMM}-{sufijo de 4 dígitos}".
// Unicidad best-effort: timestamp + azar, sin garantía.
func NewDocumentID(prefix string) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, time.Now().Format("20060102-1504"), 1000+rand.Intn(9000))
}
