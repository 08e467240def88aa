package invoice

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"storeadmin-be/internal/order"

	"github.com/go-pdf/fpdf"
)

const (
	DefaultContactEmail = "support@example.com"
	DefaultContactPhone = "1234567890"
	DefaultSiteName     = "Company Name"
)

type Settings struct {
	ContactEmail string
	ContactPhone string
	SiteName     string
	// LogoPath is a local PNG, JPEG or GIF. Missing or unsupported files
	// are skipped.
	LogoPath string
}

func (s Settings) withDefaults() Settings {
	if s.ContactEmail == "" {
		s.ContactEmail = DefaultContactEmail
	}
	if s.ContactPhone == "" {
		s.ContactPhone = DefaultContactPhone
	}
	if s.SiteName == "" {
		s.SiteName = DefaultSiteName
	}
	return s
}

// Render writes o as an A4 PDF invoice to w.
func Render(w io.Writer, o order.Order, s Settings) error {
	s = s.withDefaults()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 10, 15)
	pdf.SetAutoPageBreak(true, 10)
	pdf.SetTitle(fmt.Sprintf("Invoice %s", o.OrderNumber), true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if logo := usableLogo(s.LogoPath); logo != "" {
		pdf.ImageOptions(logo, 15, 10, 30, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		pdf.SetY(42)
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(s.SiteName), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Invoice for order "+o.OrderNumber), "", 1, "L", false, 0, "")
	if !o.CreatedAt.IsZero() {
		pdf.CellFormat(0, 6, "Date: "+o.CreatedAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{o.CustomerName, o.Email, o.PhoneNumber} {
		if line != "" {
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
	}
	if o.Address != "" {
		pdf.MultiCell(0, 6, tr(o.Address), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Order summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, it := range o.Items {
		line := fmt.Sprintf("%d. %s - %d x %s", i+1, it.Name, it.Quantity, it.Price.StringFixed(2))
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Total: "+o.TotalAmount.StringFixed(2), "T", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Questions? %s | %s", s.ContactEmail, s.ContactPhone)), "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}
	return pdf.Output(w)
}

func usableLogo(path string) string {
	if path == "" {
		return ""
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return ""
	}
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		return ""
	}
	return path
}
