package printer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xelth-com/eckform/internal/form"
	"github.com/xelth-com/eckform/internal/models"
)

// ErrNoRecords is returned when there is nothing to print
var ErrNoRecords = errors.New("no records to print")

// LabelConfig holds configuration for PDF generation
type LabelConfig struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// DefaultLabelConfig is a 2x4 grid on A4
func DefaultLabelConfig() LabelConfig {
	return LabelConfig{Cols: 2, Rows: 4, MarginTop: 10, MarginLeft: 10, GapX: 4, GapY: 4}
}

// QRContent is the text encoded in a record's QR code
func QRContent(r models.Record) string {
	return fmt.Sprintf("REC/%d/%s/%s", r.ID, form.Display(r.ProductCode), form.Display(r.LotCode))
}

// labelLines are the text lines printed beside the QR code
func labelLines(r models.Record) []string {
	return []string{
		fmt.Sprintf("#%d  %s", r.ID, form.Display(r.Date)),
		"Product: " + form.FormatCombined(r.ProductCode, r.ProductName),
		"Lot: " + form.FormatCombined(r.LotCode, r.LotNumber),
		"Warehouse: " + form.FormatCombined(r.WarehouseCode, r.WarehouseName),
		"Weight: " + form.Display(r.Weight),
	}
}

// GenerateRecordLabelsPDF creates a PDF with one QR label per record
func GenerateRecordLabelsPDF(records []models.Record, cfg LabelConfig) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	def := DefaultLabelConfig()
	if cfg.Cols < 1 {
		cfg.Cols = def.Cols
	}
	if cfg.Rows < 1 {
		cfg.Rows = def.Rows
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// A4 dimensions
	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY
	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)
	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)
	if labelW <= 0 || labelH <= 0 {
		return nil, fmt.Errorf("label grid %dx%d does not fit on the page", cfg.Cols, cfg.Rows)
	}

	labelsPerPage := cfg.Cols * cfg.Rows
	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}

	for i, r := range records {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		// Top-left of the label
		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(QRContent(r), qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to encode QR for record %d: %w", r.ID, err)
		}

		imgName := fmt.Sprintf("qr_%d", r.ID)
		pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))

		// QR on the left, square, 80% of label height
		qrSize := labelH * 0.8
		if qrSize > labelW/2 {
			qrSize = labelW / 2
		}
		pdf.ImageOptions(imgName, x+2, y+(labelH-qrSize)/2, qrSize, qrSize, false, imgOptions, 0, "")

		// Text to the right of the QR
		textX := x + qrSize + 4
		textW := labelW - qrSize - 6
		lineY := y + (labelH-5*5)/2
		for _, line := range labelLines(r) {
			pdf.SetXY(textX, lineY)
			pdf.CellFormat(textW, 5, tr(line), "", 0, "L", false, 0, "")
			lineY += 5
		}

		// Cutting guide
		pdf.SetDrawColor(200, 200, 200)
		pdf.Rect(x, y, labelW, labelH, "D")
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
