package services

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"feasibility/models"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Report is one rendered evaluation.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Result      models.FeasibilityResult
}

func (r Report) Tag() ReportTag {
	return ReportTag{
		ReportID:     r.ID,
		Revision:     r.Result.Revision,
		BuildingType: string(r.Result.Input.BuildingType),
		PlotArea:     r.Result.Input.PlotArea,
		RoadWidth:    r.Result.Input.RoadWidth,
	}
}

// WritePDF renders the feasibility report sections to w.
func WritePDF(w io.Writer, rep Report) error {
	res := rep.Result.Rounded()
	titleCaser := cases.Title(language.Und)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Feasibility Report", true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// --- Header ---
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(180, 10, "Feasibility Report")
	pdf.Ln(11)
	pdf.SetFont("Arial", "", 10)
	if res.Input.ProjectName != "" {
		pdf.Cell(180, 6, "Project: "+titleCaser.String(res.Input.ProjectName))
		pdf.Ln(6)
	}
	pdf.Cell(180, 6, fmt.Sprintf("Building Type: %s", res.Input.BuildingType))
	pdf.Ln(6)
	pdf.Cell(180, 6, fmt.Sprintf("Plot Area: %.2f sq.ft   Road Width: %.2f m", res.Input.PlotArea, res.Input.RoadWidth))
	pdf.Ln(6)
	pdf.Cell(180, 6, fmt.Sprintf("Rule Revision: %s", res.Revision))
	pdf.Ln(6)

	if rep.ID != "" {
		qr, err := qrCodeJPEG(rep.Tag(), 256)
		if err != nil {
			return fmt.Errorf("failed to generate QR code: %w", err)
		}
		name := "qr_" + rep.ID
		opts := gofpdf.ImageOptions{ImageType: "JPEG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(qr))
		pdf.ImageOptions(name, 165, 12, 30, 30, false, opts, 0, "")
	}
	pdf.Ln(6)

	section := func(title string) {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 13)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(180, 8, title, "", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
	}
	line := func(label, value string) {
		pdf.CellFormat(90, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 7, value, "1", 1, "R", false, 0, "")
	}

	section("Basic Controls")
	line("Permissible FSI", fmt.Sprintf("%g", res.FSI))
	line("Height Limit", fmt.Sprintf("%g m", res.HeightLimit))
	line("Estimated Floors (Zone-based)", fmt.Sprintf("%d", res.FloorCount))

	section("Area Statement")
	line("Total Built-up Area", fmt.Sprintf("%.2f sq.ft", res.Area.TotalBuiltUp))
	if res.Area.Split == nil {
		line("Built-up Area (Residential)", fmt.Sprintf("%.2f sq.ft", res.Area.TotalBuiltUp))
	} else {
		line("Typical Floor Plate", fmt.Sprintf("%.2f sq.ft", res.Area.Split.FloorPlate))
		line("Core Area", fmt.Sprintf("%.2f sq.ft", res.Area.Split.CoreArea))
		line("Sellable Area", fmt.Sprintf("%.2f sq.ft", res.Area.Split.SellableArea))
	}

	section("Setbacks (m)")
	line("Front", fmt.Sprintf("%g", res.Setbacks.Front))
	line("Side", fmt.Sprintf("%g", res.Setbacks.Side))
	line("Rear", fmt.Sprintf("%g", res.Setbacks.Rear))

	section("Parking")
	line("Parking Required", fmt.Sprintf("%d Cars", res.ParkingRequired))

	if res.Fire != nil {
		section("Fire Classification")
		line("Building Category", res.Fire.Category)
		line("Compliance", res.Fire.ComplianceNote)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(180, 5, models.FeasibilityNote, "", "L", false)

	// --- Footer ---
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	if rep.ID != "" {
		pdf.Cell(180, 5, "Report ID: "+rep.ID)
		pdf.Ln(4)
	}
	pdf.Cell(180, 5, "Generated on: "+rep.GeneratedAt.Format("2006-01-02 15:04:05"))

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out PDF: %w", err)
	}
	return pdf.Output(w)
}
