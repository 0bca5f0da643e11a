// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront/internal/config"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Receipt is a confirmed checkout with every amount already formatted for display
type Receipt struct {
	Reference string        `json:"reference"`
	Date      string        `json:"date"`
	Message   string        `json:"message"`
	Customer  []Field       `json:"customer"`
	Lines     []ReceiptLine `json:"lines"`
	Subtotal  string        `json:"subtotal"`
	Shipping  string        `json:"shipping"`
	Tax       string        `json:"tax"`
	Total     string        `json:"total"`
	TotalPaid string        `json:"total_paid"`
}

// Field is one customer form entry
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ReceiptLine is one purchased product
type ReceiptLine struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
}

// StoreInfo represents the store header printed on the receipt
type StoreInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// receiptData represents the data passed to the receipt template
type receiptData struct {
	Receipt *Receipt
	Store   StoreInfo
}

// GenerateReceipt renders the receipt to PDF. It needs the wkhtmltopdf binary on PATH.
func (s *Service) GenerateReceipt(receipt *Receipt) (*bytes.Buffer, error) {
	htmlContent, err := s.GenerateHTML(receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// Set PDF options
	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA5)
	pdfg.Grayscale.Set(false)

	// Add page from HTML content
	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Encoding.Set("UTF-8")

	pdfg.AddPage(page)

	// Create PDF
	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// GenerateHTML renders the receipt HTML that GenerateReceipt converts
func (s *Service) GenerateHTML(receipt *Receipt) (string, error) {
	data := receiptData{
		Receipt: receipt,
		Store: StoreInfo{
			Name:    s.config.Receipt.StoreName,
			Address: s.config.Receipt.StoreAddress,
			Email:   s.config.Receipt.StoreEmail,
		},
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.Receipt.Reference}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { border-bottom: 2px solid #eee; padding-bottom: 12px; margin-bottom: 20px; }
        .store-name { font-size: 22px; font-weight: bold; color: #2563eb; }
        .muted { color: #777; font-size: 12px; }
        table { width: 100%; border-collapse: collapse; margin-top: 16px; }
        th, td { padding: 6px 4px; border-bottom: 1px solid #eee; text-align: left; }
        td.num, th.num { text-align: right; }
        .totals td { border: none; }
        .grand td { font-weight: bold; font-size: 16px; border-top: 2px solid #333; }
    </style>
</head>
<body>
    <div class="header">
        <div class="store-name">{{.Store.Name}}</div>
        {{if .Store.Address}}<div class="muted">{{.Store.Address}}</div>{{end}}
        {{if .Store.Email}}<div class="muted">{{.Store.Email}}</div>{{end}}
    </div>
    <div>Receipt <strong>{{.Receipt.Reference}}</strong></div>
    <div class="muted">{{.Receipt.Date}}</div>
    <p>{{.Receipt.Message}}</p>
    {{if .Receipt.Customer}}
    <table>
        {{range .Receipt.Customer}}<tr><td class="muted">{{.Name}}</td><td>{{.Value}}</td></tr>{{end}}
    </table>
    {{end}}
    <table>
        <thead><tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Amount</th></tr></thead>
        <tbody>
        {{range .Receipt.Lines}}
            <tr><td>{{.Title}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.Amount}}</td></tr>
        {{end}}
        </tbody>
    </table>
    <table class="totals">
        <tr><td>Subtotal</td><td class="num">{{.Receipt.Subtotal}}</td></tr>
        <tr><td>Shipping</td><td class="num">{{.Receipt.Shipping}}</td></tr>
        <tr><td>Tax</td><td class="num">{{.Receipt.Tax}}</td></tr>
        <tr><td>Estimated total</td><td class="num">{{.Receipt.Total}}</td></tr>
        <tr class="grand"><td>Total paid</td><td class="num">{{.Receipt.TotalPaid}}</td></tr>
    </table>
</body>
</html>
`))
