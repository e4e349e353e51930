package orders

import (
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const sheetTemplate = `<html>
<body style="font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto;">
  <div style="background: #1a1a2e; color: white; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">{{.Company}}</h1>
    <p style="margin: 5px 0;">Weekly Production Order</p>
  </div>
  <div style="padding: 20px;">
    <table style="width: 100%; margin-bottom: 20px;">
      <tr><td><strong>Location:</strong> {{.Location}}</td><td><strong>Order #:</strong> {{.Order.Number}}</td></tr>
      <tr><td><strong>Order Date:</strong> {{longDate .Order.Date}}</td><td><strong>Due Date:</strong> {{longDate .Order.DueDate}}</td></tr>
    </table>
{{- with .OutOfStock}}
    <div style="background: #fee2e2; border-left: 4px solid #dc2626; padding: 15px; margin-bottom: 20px;">
      <h3 style="color: #dc2626; margin-top: 0;">Critical: Out of Stock</h3>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><th align="left">Product</th><th align="left">Category</th><th align="right">Current</th><th align="right">Request</th></tr>
{{- range .}}
        <tr><td>{{.ProductName}}</td><td>{{.Category}}</td><td align="right">{{qty .POSQuantity}}</td><td align="right"><strong>{{qty .RequestedQuantity}}</strong></td></tr>
{{- end}}
      </table>
    </div>
{{- end}}
{{- with .LowStock}}
    <div style="background: #fef3c7; border-left: 4px solid #f59e0b; padding: 15px; margin-bottom: 20px;">
      <h3 style="color: #b45309; margin-top: 0;">Low Stock</h3>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><th align="left">Product</th><th align="left">Category</th><th align="right">Current</th><th align="right">Request</th></tr>
{{- range .}}
        <tr><td>{{.ProductName}}</td><td>{{.Category}}</td><td align="right">{{qty .POSQuantity}}</td><td align="right">{{qty .RequestedQuantity}}</td></tr>
{{- end}}
      </table>
    </div>
{{- end}}
{{- with .NewProducts}}
    <div style="background: #dbeafe; border-left: 4px solid #3b82f6; padding: 15px; margin-bottom: 20px;">
      <h3 style="color: #1d4ed8; margin-top: 0;">New Products Available</h3>
      <p>These items are in production but not yet stocked at {{$.Location}}:</p>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><th align="left">Product</th><th align="left">Category</th><th align="right">Available</th><th align="right">Send</th></tr>
{{- range .}}
        <tr><td>{{.ProductName}}</td><td>{{.Category}}</td><td align="right">{{qty .ProductionAvailable}}</td><td align="right">{{qty .RequestedQuantity}}</td></tr>
{{- end}}
      </table>
    </div>
{{- end}}
    <div style="background: #f3f4f6; padding: 15px; border-radius: 8px;">
      <h3 style="margin-top: 0;">Summary</h3>
      <ul>
        <li>Critical Items: {{.Summary.Critical}}</li>
        <li>Low Stock Items: {{.Summary.High}}</li>
        <li>New Products: {{.Summary.NewProducts}}</li>
        <li><strong>Total Line Items: {{.Summary.Total}}</strong></li>
      </ul>
    </div>
  </div>
</body>
</html>
`

var sheet = template.Must(template.New("order").Funcs(template.FuncMap{
	"longDate": func(t time.Time) string { return t.Format("Monday, January 02, 2006") },
	"qty":      formatQty,
}).Parse(sheetTemplate))

type sheetData struct {
	Company     string
	Location    string
	Order       *Order
	Summary     Summary
	OutOfStock  []Item
	LowStock    []Item
	NewProducts []Item
}

// RenderHTML writes the order sheet e-mailed to production. company heads
// the sheet.
func RenderHTML(w io.Writer, o *Order, company string) error {
	if strings.TrimSpace(company) == "" {
		company = "Production Order"
	}
	return sheet.Execute(w, sheetData{
		Company:     company,
		Location:    cases.Title(language.English).String(o.Location),
		Order:       o,
		Summary:     o.Summary(),
		OutOfStock:  o.Filter(ReasonOutOfStock),
		LowStock:    o.Filter(ReasonLowStock),
		NewProducts: o.Filter(ReasonNewProduct),
	})
}

// RenderHTMLString is RenderHTML into a string.
func RenderHTMLString(o *Order, company string) (string, error) {
	var b strings.Builder
	if err := RenderHTML(&b, o, company); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
