package availability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

func newRouter() (*mux.Router, *availabilityService.Registry) {
	registry := availabilityService.NewRegistry(availabilityService.Defaults{
		Start:      540,
		End:        1080,
		ClosedDays: []time.Weekday{time.Sunday},
	}, logger.NewNop())

	h := NewHandler(registry, logger.NewNop())
	h.now = func() time.Time { return time.Date(2025, time.September, 15, 8, 0, 0, 0, time.Local) }

	r := mux.NewRouter()
	r.HandleFunc("/availability", h.List).Methods(http.MethodGet)
	r.HandleFunc("/availability/quick-edit", h.QuickEdit).Methods(http.MethodPost)
	r.HandleFunc("/availability/{weekday}", h.UpdateDay).Methods(http.MethodPut)
	return r, registry
}

func do(r http.Handler, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, url, strings.NewReader(body)))
	return w
}

func TestList(t *testing.T) {
	r, _ := newRouter()

	w := do(r, http.MethodGet, "/availability", "")
	require.Equal(t, http.StatusOK, w.Code)

	var days []DayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &days))
	require.Len(t, days, 7)
	assert.Equal(t, "Sunday", days[0].Name)
	assert.False(t, days[0].Enabled)
	assert.Equal(t, "9:00 AM", days[1].Start)
	assert.Equal(t, "6:00 PM", days[1].End)
}

func TestUpdateDay(t *testing.T) {
	r, registry := newRouter()

	w := do(r, http.MethodPut, "/availability/0", `{"start": "10:00 AM", "enabled": true}`)
	require.Equal(t, http.StatusOK, w.Code)

	sunday := registry.Day(time.Sunday)
	assert.True(t, sunday.Enabled)
	assert.Equal(t, 600, sunday.Start)
	assert.Equal(t, 1080, sunday.End)
}

func TestUpdateDayErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
		body string
	}{
		{name: "weekday out of range", url: "/availability/7", body: `{}`},
		{name: "weekday not a number", url: "/availability/mon", body: `{}`},
		{name: "bad body", url: "/availability/1", body: `{`},
		{name: "bad time", url: "/availability/1", body: `{"start": "10am"}`},
		{name: "inverted window", url: "/availability/1", body: `{"start": "7:00 PM"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, registry := newRouter()
			before := registry.Days()

			w := do(r, http.MethodPut, tt.url, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, before, registry.Days())
		})
	}
}

func TestQuickEdit(t *testing.T) {
	r, registry := newRouter()

	w := do(r, http.MethodPost, "/availability/quick-edit", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body QuickEditResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Monday", body.Day.Name)
	assert.False(t, body.Day.Enabled)
	assert.Equal(t, "all", body.Break.ProviderID)
	assert.Equal(t, "2025-09-15", body.Break.DayISO)
	assert.Equal(t, "12:00 PM", body.Break.Start)
	assert.Equal(t, "1:00 PM", body.Break.End)

	// повторная правка не дублирует перерыв
	do(r, http.MethodPost, "/availability/quick-edit", "")
	assert.Len(t, registry.BreaksForDay("2025-09-15"), 1)
	assert.True(t, registry.Day(time.Monday).Enabled)
}
