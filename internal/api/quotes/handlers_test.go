package quotes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/courtbook/internal/booking"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/testutil"
)

func TestQuote(t *testing.T) {
	database := testutil.NewTestDB(t)
	court := testutil.SeedCourt(t, database, "Centre", "tennis", 2000)
	service = booking.NewService(database, booking.DefaultConfig())
	t.Cleanup(func() { service = nil })

	body := fmt.Sprintf(`{"courtId":%d,"startTime":"2025-06-14T10:00:00Z","endTime":"2025-06-14T12:00:00Z"}`, court.ID)
	rec := httptest.NewRecorder()
	HandleQuote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var breakdown models.PriceBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &breakdown))
	assert.Equal(t, int64(4000), breakdown.BasePrice)
	assert.Equal(t, int64(400), breakdown.Tax)
	assert.Equal(t, int64(4400), breakdown.Total)
}

func TestQuoteRejectsMissingCourt(t *testing.T) {
	database := testutil.NewTestDB(t)
	service = booking.NewService(database, booking.DefaultConfig())
	t.Cleanup(func() { service = nil })

	rec := httptest.NewRecorder()
	HandleQuote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes",
		strings.NewReader(`{"startTime":"2025-06-14T10:00:00Z","endTime":"2025-06-14T12:00:00Z"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	HandleQuote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes",
		strings.NewReader(`{"courtId":42,"startTime":"2025-06-14T10:00:00Z","endTime":"2025-06-14T12:00:00Z"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
