package receipt

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/receipt.html
var templatesFS embed.FS

var tmpl = template.Must(template.New("receipt.html").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"deref": func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	},
}).ParseFS(templatesFS, "templates/receipt.html"))

type line struct {
	Name     string
	Qty      int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

type view struct {
	OrderID   string
	TableCode string
	OrderBy   *string
	Status    models.OrderStatus
	Lines     []line
	Total     decimal.Decimal
}

// Render expects the order with Table and Items.Food loaded.
func Render(o *models.Order) ([]byte, error) {
	v := view{
		OrderID: o.ID.String(),
		OrderBy: o.OrderBy,
		Status:  o.Status,
		Total:   o.TotalPrice,
		Lines:   make([]line, 0, len(o.Items)),
	}
	if o.Table != nil {
		v.TableCode = o.Table.Code
	}
	for _, it := range o.Items {
		name := it.FoodID.String()
		if it.Food != nil {
			name = it.Food.Name
		}
		v.Lines = append(v.Lines, line{Name: name, Qty: it.Qty, Price: it.Price, Subtotal: it.Subtotal})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
