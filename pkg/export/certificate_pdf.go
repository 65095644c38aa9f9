package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData carries the fields printed on a zoning certificate.
type CertificateData struct {
	EstablishmentName   string
	OwnerName           string
	Location            string
	Barangay            string
	FloodSusceptibility string
	ZoneStatus          string
	IssueDate           string
	CertificateID       string
}

// CertificatePDF renders zoning certificates issued by the DRRM office.
type CertificatePDF struct {
	CityName string
	Office   string
}

// NewCertificatePDF constructs a certificate renderer with the issuing
// office letterhead.
func NewCertificatePDF(cityName, office string) *CertificatePDF {
	if cityName == "" {
		cityName = "Silay City"
	}
	if office == "" {
		office = "City Disaster Risk Reduction and Management Office"
	}
	return &CertificatePDF{CityName: cityName, Office: office}
}

// Render produces the certificate document as PDF bytes.
func (e *CertificatePDF) Render(data CertificateData) ([]byte, error) {
	if strings.TrimSpace(data.EstablishmentName) == "" {
		return nil, fmt.Errorf("certificate requires an establishment name")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 7, strings.ToUpper(e.CityName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, e.Office, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(0, 9, "ZONING CERTIFICATION", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"This is to certify that the establishment described below has been assessed against the city flood susceptibility maps on record with this office."), "", "L", false)
	pdf.Ln(4)

	rows := [][2]string{
		{"Establishment", data.EstablishmentName},
		{"Owner", data.OwnerName},
		{"Location", data.Location},
		{"Barangay", data.Barangay},
		{"Flood Susceptibility", data.FloodSusceptibility},
		{"Zone Status", data.ZoneStatus},
		{"Date Issued", data.IssueDate},
	}
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf(
		"This certification is issued for zoning and permitting purposes only and does not constitute a guarantee against flooding. Reference: %s.", data.CertificateID), "", "L", false)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render certificate pdf: %w", err)
	}
	return buf.Bytes(), nil
}
