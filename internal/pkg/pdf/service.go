// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/order"
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

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(ord *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", ord.OrderNumber),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		Order:         ord,
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Phone:   s.config.App.CompanyPhone,
			Email:   s.config.App.CompanyEmail,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string       `json:"invoice_number"`
	InvoiceDate   string       `json:"invoice_date"`
	Order         *order.Order `json:"order"`
	Company       CompanyInfo  `json:"company"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #1a1a1a; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; }
        .company h1 { margin: 0 0 4px 0; font-size: 22px; }
        .company p { margin: 2px 0; font-size: 12px; color: #555; }
        .invoice-meta { text-align: right; font-size: 12px; }
        .invoice-meta h2 { margin: 0 0 6px 0; font-size: 18px; }
        .customer { margin-bottom: 24px; font-size: 13px; }
        table { width: 100%; border-collapse: collapse; font-size: 13px; }
        th { text-align: left; border-bottom: 2px solid #1a1a1a; padding: 8px 6px; }
        td { border-bottom: 1px solid #ddd; padding: 8px 6px; }
        .num { text-align: right; }
        .total-row td { border-bottom: none; font-weight: bold; padding-top: 14px; }
        .status { margin-top: 24px; font-size: 12px; color: #555; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>{{.Company.Email}}{{if .Company.Phone}} · {{.Company.Phone}}{{end}}</p>
        </div>
        <div class="invoice-meta">
            <h2>{{.InvoiceNumber}}</h2>
            <p>Date: {{.InvoiceDate}}</p>
            <p>Order: {{.Order.OrderNumber}}</p>
        </div>
    </div>

    <div class="customer">
        <strong>{{.Order.FullName}}</strong><br>
        {{.Order.Email}}{{if .Order.Phone}}<br>{{.Order.Phone}}{{end}}
        {{if .Order.City}}<br>{{.Order.City}}{{if .Order.Address}}, {{.Order.Address}}{{end}}{{end}}
    </div>

    <table>
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Price</th>
                <th class="num">Qty</th>
                <th class="num">Subtotal</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="num">{{.Price}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.Subtotal}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td colspan="3">Total</td>
                <td class="num">{{.Order.TotalPrice}}</td>
            </tr>
        </tbody>
    </table>

    <div class="status">
        Status: {{.Order.Status}}{{if .Order.Paid}} · paid{{end}}
    </div>
</body>
</html>
`
