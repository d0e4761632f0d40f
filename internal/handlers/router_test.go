package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xelth-com/eckform/internal/models"
	"github.com/xelth-com/eckform/internal/pagination"
	"github.com/xelth-com/eckform/internal/persistence"
	"github.com/xelth-com/eckform/internal/store"
	"github.com/xelth-com/eckform/internal/websocket"
)

type listResponse struct {
	Items       []models.Record      `json:"items"`
	Start       int                  `json:"start"`
	End         int                  `json:"end"`
	Total       int                  `json:"total"`
	Summary     string               `json:"summary"`
	Controls    []pagination.Control `json:"controls"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
	Rows        [][]string           `json:"rows"`
}

func setupRouter(t *testing.T, n int) (*Router, *store.Store) {
	t.Helper()
	st := store.New(persistence.NewAdapter(persistence.NewMemorySlot(), "", nil))
	for i := 1; i <= n; i++ {
		st.Create(models.Fields{ProductCode: models.StringPtr(fmt.Sprintf("P-%d", i))})
	}
	r := NewRouter(st, pagination.NewView(st, 5), websocket.NewHub(nil), nil)
	t.Cleanup(r.Close)
	return r, st
}

func do(t *testing.T, r *Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupRouter(t, 0)

	rec := do(t, r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatus(t *testing.T) {
	r, _ := setupRouter(t, 3)

	rec := do(t, r, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, float64(3), body["records"])
	assert.Equal(t, float64(4), body["nextId"])
	assert.Equal(t, float64(0), body["wsClients"])
}

func TestCreateRecord(t *testing.T) {
	r, st := setupRouter(t, 0)

	rec := do(t, r, http.MethodPost, "/api/records", map[string]string{
		"dateFrom":    "2024-05-01",
		"dateTo":      "2024-05-03",
		"productCode": "P-100",
		"productName": "Steel coil",
		"notes":       "-",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Record
	decode(t, rec, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "2024-05-01 ~ 2024-05-03", *created.Date)
	assert.Nil(t, created.Notes)
	assert.Equal(t, 1, st.Count())
}

func TestCreateRecordBadPayload(t *testing.T) {
	r, st := setupRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/records", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, st.Count())
}

func TestListRecords(t *testing.T) {
	r, _ := setupRouter(t, 12)

	rec := do(t, r, http.MethodGet, "/api/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page listResponse
	decode(t, rec, &page)
	assert.Equal(t, "Showing 1 to 5 of 12 records", page.Summary)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(12), page.Items[0].ID)
	assert.Equal(t, "1", page.Rows[0][0])
	assert.Equal(t, "P-12", page.Rows[0][4])
	assert.Equal(t, 3, page.TotalPages)
	require.NotEmpty(t, page.Controls)
	assert.True(t, page.Controls[0].Disabled, "previous is disabled on page 1")

	rec = do(t, r, http.MethodGet, "/api/records?page=3", nil)
	decode(t, rec, &page)
	assert.Equal(t, "Showing 11 to 12 of 12 records", page.Summary)
	assert.Equal(t, "11", page.Rows[0][0])

	rec = do(t, r, http.MethodGet, "/api/records?pageSize=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecord(t *testing.T) {
	r, _ := setupRouter(t, 2)

	rec := do(t, r, http.MethodGet, "/api/records/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Record
	decode(t, rec, &got)
	assert.Equal(t, "P-2", *got.ProductCode)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/records/9", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/records/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/records/0", nil).Code)
}

func TestGetRecordForm(t *testing.T) {
	r, st := setupRouter(t, 0)
	st.Create(models.Fields{
		Date:        models.StringPtr("2024-05-01 ~ 2024-05-03"),
		ProductCode: models.StringPtr("P-1"),
	})

	rec := do(t, r, http.MethodGet, "/api/records/1/form", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "2024-05-01", body["dateFrom"])
	assert.Equal(t, "2024-05-03", body["dateTo"])
	assert.Equal(t, "P-1", body["productCode"])
	assert.Equal(t, "", body["notes"])
}

func TestUpdateRecord(t *testing.T) {
	r, st := setupRouter(t, 2)

	rec := do(t, r, http.MethodPut, "/api/records/1", map[string]string{"productCode": "P-99"})
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := st.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "P-99", *got.ProductCode)
	assert.Equal(t, int64(2), st.Records()[0].ID, "update keeps position")

	rec = do(t, r, http.MethodPut, "/api/records/7", map[string]string{"productCode": "P-99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 2, st.Count())
}

func TestUpdateReplacesFieldSet(t *testing.T) {
	r, st := setupRouter(t, 0)
	st.Create(models.Fields{
		ProductCode: models.StringPtr("P-1"),
		Notes:       models.StringPtr("fragile"),
	})

	rec := do(t, r, http.MethodPut, "/api/records/1", map[string]string{"productCode": "P-2"})
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := st.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "P-2", *got.ProductCode)
	assert.Nil(t, got.Notes, "fields missing from the body are cleared")
}

func TestDeleteRecord(t *testing.T) {
	r, st := setupRouter(t, 3)

	rec := do(t, r, http.MethodDelete, "/api/records/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, st.Count())

	rec = do(t, r, http.MethodDelete, "/api/records/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 2, st.Count())
}

func TestClearRecords(t *testing.T) {
	r, st := setupRouter(t, 4)

	rec := do(t, r, http.MethodDelete, "/api/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, st.Count())
	assert.Equal(t, int64(1), st.NextID())
}

func TestNavigate(t *testing.T) {
	r, _ := setupRouter(t, 12)

	rec := do(t, r, http.MethodPost, "/api/view/page", map[string]string{"token": "next"})
	require.Equal(t, http.StatusOK, rec.Code)
	var page listResponse
	decode(t, rec, &page)
	assert.Equal(t, 2, page.CurrentPage)

	rec = do(t, r, http.MethodPost, "/api/view/page", map[string]string{"token": "99"})
	decode(t, rec, &page)
	assert.Equal(t, 3, page.CurrentPage)

	rec = do(t, r, http.MethodPost, "/api/view/page", map[string]string{"token": "..."})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetPageSize(t *testing.T) {
	r, _ := setupRouter(t, 12)
	do(t, r, http.MethodPost, "/api/view/page", map[string]string{"token": "3"})

	rec := do(t, r, http.MethodPost, "/api/view/size", map[string]int{"pageSize": 10})
	require.Equal(t, http.StatusOK, rec.Code)
	var page listResponse
	decode(t, rec, &page)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 10)

	rec = do(t, r, http.MethodPost, "/api/view/size", map[string]int{"pageSize": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHugePageSize(t *testing.T) {
	r, _ := setupRouter(t, 2)

	rec := do(t, r, http.MethodPost, "/api/view/size", map[string]int{"pageSize": math.MaxInt})
	require.Equal(t, http.StatusOK, rec.Code)
	var page listResponse
	decode(t, rec, &page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.Empty(t, page.Controls)
}

func TestDeleteClampsSharedView(t *testing.T) {
	r, _ := setupRouter(t, 6)
	do(t, r, http.MethodPost, "/api/view/page", map[string]string{"token": "2"})

	do(t, r, http.MethodDelete, "/api/records/1", nil)

	assert.Equal(t, 1, r.view.State().CurrentPage)
	rec := do(t, r, http.MethodGet, "/api/records", nil)
	var page listResponse
	decode(t, rec, &page)
	assert.Equal(t, "Showing 1 to 5 of 5 records", page.Summary)
}

func TestRecordLabel(t *testing.T) {
	r, _ := setupRouter(t, 1)

	rec := do(t, r, http.MethodGet, "/api/records/1/label", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "labels_record_1.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/records/5/label", nil).Code)
}

func TestPageLabels(t *testing.T) {
	r, _ := setupRouter(t, 0)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/labels", nil).Code)

	r, _ = setupRouter(t, 3)
	rec := do(t, r, http.MethodGet, "/api/labels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "labels_page_1.pdf")
}

func TestCaseInsensitivePaths(t *testing.T) {
	r, _ := setupRouter(t, 1)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/API/Records/1", nil).Code)
}
