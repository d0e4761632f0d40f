package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xelth-com/eckform/internal/form"
	"github.com/xelth-com/eckform/internal/pagination"
	"github.com/xelth-com/eckform/internal/store"
)

// pageResponse is a rendered page plus its table cells
type pageResponse struct {
	pagination.Page
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func newPageResponse(p pagination.Page) pageResponse {
	return pageResponse{
		Page:    p,
		Columns: form.Columns,
		Rows:    form.Rows(p.Items, p.Start),
	}
}

// parseID reads the {id} path variable
func parseID(req *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid record id")
	}
	return id, nil
}

// listRecords renders the current page. Optional pageSize and page query
// parameters move the view first.
func (r *Router) listRecords(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid page size")
			return
		}
		if err := r.view.SetPageSize(n); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if v := q.Get("page"); v != "" {
		if err := r.view.Navigate(v); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	respondJSON(w, http.StatusOK, newPageResponse(r.view.Render()))
}

// getRecord returns a single record by ID
func (r *Router) getRecord(w http.ResponseWriter, req *http.Request) {
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

	respondJSON(w, http.StatusOK, record)
}

// getRecordForm returns the form values for editing a record
func (r *Router) getRecordForm(w http.ResponseWriter, req *http.Request) {
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

	respondJSON(w, http.StatusOK, form.FromRecord(record))
}

// createRecord stores a form submission
func (r *Router) createRecord(w http.ResponseWriter, req *http.Request) {
	var in form.Input
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record := r.store.Create(in.Fields())
	respondJSON(w, http.StatusCreated, record)
}

// updateRecord replaces the whole field set of an existing record. Fields
// left out of the body are cleared, so the form sends all of them.
func (r *Router) updateRecord(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var in form.Input
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := r.store.Update(id, in.Fields())
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// deleteRecord deletes a record
func (r *Router) deleteRecord(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	record, err := r.store.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Record deleted successfully",
		"record":  record,
	})
}

// clearRecords removes every record and resets the id counter
func (r *Router) clearRecords(w http.ResponseWriter, req *http.Request) {
	r.store.ClearAll()
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "All records cleared",
	})
}

type navigateRequest struct {
	Token string `json:"token"`
}

// navigate applies a pagination control click
func (r *Router) navigate(w http.ResponseWriter, req *http.Request) {
	var body navigateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.view.Navigate(body.Token); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, newPageResponse(r.view.Render()))
}

type pageSizeRequest struct {
	PageSize int `json:"pageSize"`
}

// setPageSize changes the page size, which also returns to page 1
func (r *Router) setPageSize(w http.ResponseWriter, req *http.Request) {
	var body pageSizeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.view.SetPageSize(body.PageSize); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, newPageResponse(r.view.Render()))
}
