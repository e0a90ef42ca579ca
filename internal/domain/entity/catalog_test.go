package entity

import "testing"

// TestParsePrice - coerción de precios tal como vienen de la planilla
func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"18000", 18000, true},
		{"18000.50", 18000.50, true},
		{"1.234,56", 1234.56, true}, // formato local: punto de miles, coma decimal
		{"1234,56", 1234.56, true},
		{"$7500", 7500, true},
		{"$ 7.5", 7.5, true}, // sin coma el punto es decimal
		{"  12000  ", 12000, true},
		{"", 0, true}, // celda vacía vale cero
		{"consultar", 0, false},
		{"-100", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePrice(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePrice(%q) = (%v, %v), esperado (%v, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
