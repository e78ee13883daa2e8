package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khapa77/gong-dullabha/internal/client"
	"github.com/khapa77/gong-dullabha/internal/weekday"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

func newDeviceServer(t *testing.T, clockOK, alarmsOK bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/time", func(w http.ResponseWriter, _ *http.Request) {
		if !clockOK {
			http.Error(w, "rtc offline", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"time": "04:00:00", "date": "16.10.2026"})
	})
	mux.HandleFunc("/api/alarms", func(w http.ResponseWriter, _ *http.Request) {
		if !alarmsOK {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "storage unavailable"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"alarms": []map[string]any{
			{"id": 1, "time": "04:00", "days": []int{0, 1, 2}, "duration": 30, "active": true},
			{"id": 2, "time": "21:00", "days": []int{}, "duration": 10, "active": false},
			{"id": 3, "time": "12:00", "days": []int{5}, "duration": 15, "active": true},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCollector(srv *httptest.Server) *GongCollector {
	api := client.New(client.ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, DayBase: weekday.Zero})
	return &GongCollector{Client: api, Timeout: 2 * time.Second}
}

func TestGongCollector_HealthyDevice(t *testing.T) {
	c := newTestCollector(newDeviceServer(t, true, true))

	expected := `
# HELP gong_alarm_duration_seconds Ring duration of each scheduled alarm.
# TYPE gong_alarm_duration_seconds gauge
gong_alarm_duration_seconds{id="1",time="04:00"} 30
gong_alarm_duration_seconds{id="2",time="21:00"} 10
gong_alarm_duration_seconds{id="3",time="12:00"} 15
# HELP gong_alarms_total Scheduled alarms grouped by state.
# TYPE gong_alarms_total gauge
gong_alarms_total{state="active"} 2
gong_alarms_total{state="inactive"} 1
# HELP gong_clock_reachable Whether /api/time answered.
# TYPE gong_clock_reachable gauge
gong_clock_reachable 1
# HELP gong_up Was the last scrape successful.
# TYPE gong_up gauge
gong_up 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"gong_alarm_duration_seconds", "gong_alarms_total", "gong_clock_reachable", "gong_up")
	require.NoError(t, err)
}

func TestGongCollector_AlarmScrapeFails(t *testing.T) {
	c := newTestCollector(newDeviceServer(t, true, false))

	expected := `
# HELP gong_clock_reachable Whether /api/time answered.
# TYPE gong_clock_reachable gauge
gong_clock_reachable 1
# HELP gong_up Was the last scrape successful.
# TYPE gong_up gauge
gong_up 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"gong_alarms_total", "gong_clock_reachable", "gong_up")
	require.NoError(t, err)
}

func TestGongCollector_ClockDown(t *testing.T) {
	c := newTestCollector(newDeviceServer(t, false, true))

	expected := `
# HELP gong_clock_reachable Whether /api/time answered.
# TYPE gong_clock_reachable gauge
gong_clock_reachable 0
# HELP gong_up Was the last scrape successful.
# TYPE gong_up gauge
gong_up 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected), "gong_clock_reachable", "gong_up")
	require.NoError(t, err)

	// alarms are still reported: 3 durations, 2 states, plus reachable, up and scrape time
	assert.Equal(t, 8, testutil.CollectAndCount(c))
}

type staticDevice struct {
	alarms []models.Alarm
}

func (d staticDevice) ListAlarms(context.Context) ([]models.Alarm, error) { return d.alarms, nil }

func (d staticDevice) GetTime(context.Context) (models.ServerTime, error) {
	return models.ServerTime{Time: "04:00:00"}, nil
}

func TestGongCollector_DuplicateIDsAreSkipped(t *testing.T) {
	c := &GongCollector{Client: staticDevice{alarms: []models.Alarm{
		{ID: 1, Time: "04:00", Duration: 30, Active: true},
		{ID: 1, Time: "04:00", Duration: 30, Active: true},
		{ID: 2, Time: "21:00", Duration: 10},
	}}}

	expected := `
# HELP gong_alarm_duration_seconds Ring duration of each scheduled alarm.
# TYPE gong_alarm_duration_seconds gauge
gong_alarm_duration_seconds{id="1",time="04:00"} 30
gong_alarm_duration_seconds{id="2",time="21:00"} 10
# HELP gong_alarms_total Scheduled alarms grouped by state.
# TYPE gong_alarms_total gauge
gong_alarms_total{state="active"} 1
gong_alarms_total{state="inactive"} 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"gong_alarm_duration_seconds", "gong_alarms_total")
	require.NoError(t, err)
}
