// Package pdf renders share certificates. Rendering is a pure function of the
// shareholder and issuance passed in; the renderer holds no state.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/captable/captable-api/internal/core/domain"
)

// CertificateRenderer produces a one-page Letter certificate with a SAMPLE
// watermark and the issuance details.
type CertificateRenderer struct{}

func NewCertificateRenderer() *CertificateRenderer {
	return &CertificateRenderer{}
}

// Render implements ports.CertificateRenderer.
func (CertificateRenderer) Render(sh *domain.Shareholder, iss *domain.ShareIssuance) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	pageW, pageH := doc.GetPageSize()

	// Watermark, rotated 45 degrees around the page centre.
	doc.SetFont("Helvetica", "", 60)
	doc.SetTextColor(211, 211, 211)
	doc.TransformBegin()
	doc.TransformRotate(45, pageW/2, pageH/2)
	doc.SetXY(0, pageH/2-30)
	doc.CellFormat(pageW, 60, "SAMPLE", "", 0, "C", false, 0, "")
	doc.TransformEnd()

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 20)
	doc.SetXY(0, 90)
	doc.CellFormat(pageW, 20, "Share Certificate", "", 0, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Shareholder: %s", sh.Name),
		fmt.Sprintf("Email: %s", sh.Email),
		fmt.Sprintf("Number of Shares: %d", iss.NumberOfShares),
		fmt.Sprintf("Price per Share: $%s", iss.Price.StringFixed(2)),
		fmt.Sprintf("Issue Date: %s", iss.Date.Format("2006-01-02")),
	}
	y := 150.0
	for _, line := range lines {
		doc.Text(100, y, line)
		y += 20
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
