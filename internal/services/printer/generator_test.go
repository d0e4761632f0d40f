package printer

import (
	"bytes"
	"testing"

	"github.com/xelth-com/eckform/internal/models"
)

func TestGenerateRecordLabelsPDF(t *testing.T) {
	records := make([]models.Record, 0, 9)
	for i := 1; i <= 9; i++ {
		records = append(records, models.Record{
			ID: int64(i),
			Fields: models.Fields{
				ProductCode: models.StringPtr("P-100"),
				ProductName: models.StringPtr("Steel coil"),
				LotCode:     models.StringPtr("L7"),
			},
		})
	}

	pdf, err := GenerateRecordLabelsPDF(records, LabelConfig{})
	if err != nil {
		t.Fatalf("Failed to generate PDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("Output does not look like a PDF")
	}
}

func TestGenerateRecordLabelsPDF_Empty(t *testing.T) {
	if _, err := GenerateRecordLabelsPDF(nil, DefaultLabelConfig()); err != ErrNoRecords {
		t.Errorf("Expected ErrNoRecords, got %v", err)
	}
}

func TestQRContent(t *testing.T) {
	r := models.Record{ID: 42, Fields: models.Fields{ProductCode: models.StringPtr("P-1")}}
	if got, want := QRContent(r), "REC/42/P-1/-"; got != want {
		t.Errorf("QRContent = %q, want %q", got, want)
	}
}
