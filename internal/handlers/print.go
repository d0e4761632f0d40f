package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/xelth-com/eckform/internal/models"
	"github.com/xelth-com/eckform/internal/services/printer"
	"go.uber.org/zap"
)

// getRecordLabel prints the label of one record
func (r *Router) getRecordLabel(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	record, err := r.store.FindByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	r.writeLabels(w, []models.Record{record}, fmt.Sprintf("record_%d", id))
}

// getPageLabels prints labels for every record on the current page
func (r *Router) getPageLabels(w http.ResponseWriter, req *http.Request) {
	page := r.view.Render()
	if len(page.Items) == 0 {
		respondError(w, http.StatusNotFound, "No records to print")
		return
	}

	r.writeLabels(w, page.Items, fmt.Sprintf("page_%d", page.CurrentPage))
}

func (r *Router) writeLabels(w http.ResponseWriter, records []models.Record, name string) {
	pdfBytes, err := printer.GenerateRecordLabelsPDF(records, printer.DefaultLabelConfig())
	if err != nil {
		r.logger.Error("Failed to generate labels", zap.Error(err))
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	// Set headers for download
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"labels_%s.pdf\"", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))

	w.Write(pdfBytes)
}
