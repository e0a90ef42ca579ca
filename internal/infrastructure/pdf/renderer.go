// Package pdf genera los documentos A4 (presupuesto y remito) con maroto/v2.
// El encabezado con los datos de la empresa se repite en cada página; los
// ítems salen en el orden en que fueron resueltos.
package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/usecase"
)

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240}
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249}
)

// CompanyInfo datos de la empresa para el encabezado
type CompanyInfo struct {
	Nombre    string
	Sub       string
	CUIT      string
	Direccion string
	Telefono  string
	Email     string
	Logo      []byte // PNG opcional
}

// Renderer genera presupuestos y remitos como bytes de PDF
type Renderer struct {
	company CompanyInfo
}

// NewRenderer crea el renderer con los datos de encabezado fijos
func NewRenderer(company CompanyInfo) *Renderer {
	return &Renderer{company: company}
}

// RenderQuote presupuesto con precios, subtotal, descuento y total
func (r *Renderer) RenderQuote(id, clientName string, items []entity.LineItem, discountPercent float64) ([]byte, error) {
	m, err := r.newDocument("Presupuesto " + id)
	if err != nil {
		return nil, err
	}

	m.AddRows(r.clientBlock(clientName)...)
	m.AddRows(r.itemsTable(items, true)...)
	m.AddRows(r.totalsBlock(items, discountPercent)...)

	return generate(m)
}

// RenderDeliveryNote remito sin precios: solo descripción y cantidad
func (r *Renderer) RenderDeliveryNote(id, clientName string, items []entity.LineItem) ([]byte, error) {
	m, err := r.newDocument("Remito " + id)
	if err != nil {
		return nil, err
	}

	m.AddRows(r.clientBlock(clientName)...)
	m.AddRows(r.itemsTable(items, false)...)

	return generate(m)
}

func (r *Renderer) newDocument(title string) (core.Maroto, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterHeader(r.headerRows(title)...); err != nil {
		return nil, fmt.Errorf("register header: %w", err)
	}
	return m, nil
}

func (r *Renderer) headerRows(title string) []core.Row {
	leftCol := col.New(4)
	if len(r.company.Logo) > 0 {
		leftCol.Add(image.NewFromBytes(r.company.Logo, extension.Png, props.Rect{
			Percent: 80,
		}))
	} else {
		leftCol.Add(text.New(r.company.Sub, props.Text{
			Size:  13,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Top:   3,
		}))
	}

	companyCol := col.New(4).Add(
		text.New(r.company.Nombre, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}),
		text.New(r.company.CUIT, props.Text{Size: 8, Color: colorSecondary, Top: 4}),
		text.New(r.company.Direccion, props.Text{Size: 8, Color: colorSecondary, Top: 8}),
		text.New(r.company.Telefono+"  |  "+r.company.Email, props.Text{Size: 8, Color: colorSecondary, Top: 12}),
	)

	titleCol := col.New(4).Add(
		text.New(title, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorPrimary,
		}),
	)

	return []core.Row{
		row.New(18).Add(leftCol, companyCol, titleCol),
		row.New(1).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorBorder}),
		row.New(4),
	}
}

func (r *Renderer) clientBlock(clientName string) []core.Row {
	return []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New("Cliente: "+clientName, props.Text{Size: 10, Color: colorPrimary})),
		),
		row.New(5).Add(
			col.New(12).Add(text.New(time.Now().Format("Fecha: 2006-01-02 15:04"), props.Text{Size: 10, Color: colorPrimary})),
		),
		row.New(6),
	}
}

func (r *Renderer) itemsTable(items []entity.LineItem, withPrices bool) []core.Row {
	headerStyle := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerRight := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	header := row.New(7)
	if withPrices {
		header.Add(
			col.New(8).Add(text.New("Descripción", headerStyle)),
			col.New(1).Add(text.New("Cant.", headerStyle)),
			col.New(3).Add(text.New("Precio", headerRight)),
		)
	} else {
		header.Add(
			col.New(10).Add(text.New("Descripción", headerStyle)),
			col.New(2).Add(text.New("Cant.", headerStyle)),
		)
	}
	header.WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	})

	rows := []core.Row{header}
	cellStyle := props.Text{Size: 9, Color: colorPrimary, Top: 1}
	cellRight := props.Text{Size: 9, Color: colorPrimary, Align: align.Right, Top: 1}

	for _, it := range items {
		itemRow := row.New(6)
		if withPrices {
			itemRow.Add(
				col.New(8).Add(text.New(truncate(it.Entry.Name, 90), cellStyle)),
				col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), cellStyle)),
				col.New(3).Add(text.New(formatMoney(it.Entry.UnitPrice), cellRight)),
			)
		} else {
			itemRow.Add(
				col.New(10).Add(text.New(truncate(it.Entry.Name, 100), cellStyle)),
				col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), cellStyle)),
			)
		}
		rows = append(rows, itemRow)
	}
	return rows
}

func (r *Renderer) totalsBlock(items []entity.LineItem, discountPercent float64) []core.Row {
	totals := usecase.ComputeTotals(items, discountPercent)

	labelStyle := props.Text{Size: 9, Color: colorSecondary, Align: align.Right}
	valueStyle := props.Text{Size: 9, Color: colorPrimary, Align: align.Right}

	return []core.Row{
		row.New(4),
		row.New(1).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorBorder}),
		row.New(2),
		row.New(6).Add(
			col.New(9).Add(text.New("Subtotal:", labelStyle)),
			col.New(3).Add(text.New(formatMoney(totals.Subtotal), valueStyle)),
		),
		row.New(6).Add(
			col.New(9).Add(text.New(fmt.Sprintf("Descuento (%.0f%%):", discountPercent), labelStyle)),
			col.New(3).Add(text.New("- "+formatMoney(totals.DiscountAmount), valueStyle)),
		),
		row.New(7).Add(
			col.New(9).Add(text.New("TOTAL:", props.Text{Size: 10, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right})),
			col.New(3).Add(text.New(formatMoney(totals.Total), props.Text{Size: 10, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right})),
		),
	}
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// formatMoney "$1,234.56"
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := "$" + b.String() + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
