package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khapa77/gong-dullabha/internal/weekday"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

type recordedRequest struct {
	Method    string
	Path      string
	Query     string
	Body      string
	RequestID string
	Header    http.Header
}

// fakeDevice serves canned responses keyed by "METHOD /path" and records
// every request it receives.
type fakeDevice struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeDevice(t *testing.T) (*fakeDevice, *httptest.Server) {
	t.Helper()
	d := &fakeDevice{routes: map[string]func(http.ResponseWriter, *http.Request){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		d.mu.Lock()
		d.requests = append(d.requests, recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			Body:      string(body),
			RequestID: r.Header.Get("X-Request-ID"),
			Header:    r.Header.Clone(),
		})
		h, ok := d.routes[r.Method+" "+r.URL.Path]
		d.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return d, srv
}

func (d *fakeDevice) handle(route string, status int, body any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[route] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (d *fakeDevice) last() recordedRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requests[len(d.requests)-1]
}

func newTestClient(srv *httptest.Server, base weekday.Base) *GongClient {
	return New(ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, DayBase: base})
}

func TestListAlarms_WrappedShape(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("GET /api/alarms", http.StatusOK, map[string]any{
		"alarms": []map[string]any{
			{"id": 1, "time": "07:30", "days": []int{0, 2, 4}, "duration": 30, "active": true},
			{"id": 2, "time": "21:00", "days": []int{}, "duration": 10, "active": false},
		},
	})

	alarms, err := newTestClient(srv, weekday.Zero).ListAlarms(context.Background())
	require.NoError(t, err)
	require.Len(t, alarms, 2)
	assert.Equal(t, models.Alarm{ID: 1, Time: "07:30", Days: []int{0, 2, 4}, Duration: 30, Active: true}, alarms[0])
	assert.False(t, alarms[1].Active)
}

func TestListAlarms_BareArrayShapeWithOneBasedDays(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("GET /api/alarms", http.StatusOK, []map[string]any{
		{"id": 5, "time": "06:00", "days": []int{1, 7}, "active": true, "label": "morning"},
	})

	alarms, err := newTestClient(srv, weekday.One).ListAlarms(context.Background())
	require.NoError(t, err)
	require.Len(t, alarms, 1)
	assert.Equal(t, []int{0, 6}, alarms[0].Days)
	assert.Equal(t, "morning", alarms[0].Label)
}

// raw serves body with whatever Content-Type net/http sniffs for it.
func (d *fakeDevice) raw(route string, status int, body string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[route] = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestListAlarms_UnlabelledJSON(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.raw("GET /api/alarms", http.StatusOK, `{"alarms":[{"id":1,"time":"04:00","days":[0],"duration":30,"active":true}]}`)

	alarms, err := newTestClient(srv, weekday.Zero).ListAlarms(context.Background())
	require.NoError(t, err)
	require.Len(t, alarms, 1)
	assert.Equal(t, "04:00", alarms[0].Time)
}

func TestListAlarms_NonJSONSuccessIsAnError(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.raw("GET /api/alarms", http.StatusOK, "<html>captive portal</html>")

	alarms, err := newTestClient(srv, weekday.Zero).ListAlarms(context.Background())
	require.Error(t, err)
	assert.Nil(t, alarms)
}

func TestGetTime_UnlabelledJSON(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.raw("GET /api/time", http.StatusOK, `{"time":"04:00:00","date":"16.10.2026"}`)

	got, err := newTestClient(srv, weekday.Zero).GetTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "04:00:00", got.Time)
}

func TestCreateAlarm_SendsWireDaysAndRequestID(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("POST /api/alarms", http.StatusCreated, map[string]any{
		"id": 9, "time": "08:15", "days": []int{2}, "duration": 20, "active": true,
	})

	created, err := newTestClient(srv, weekday.One).CreateAlarm(context.Background(), models.AlarmInput{
		Time: "08:15", Days: []int{1}, Duration: 20, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, []int{1}, created.Days)

	req := dev.last()
	assert.JSONEq(t, `{"time":"08:15","days":[2],"duration":20,"active":true}`, req.Body)
	assert.NotEmpty(t, req.RequestID)
}

func TestCreateAlarm_EmptyDaysEncodeAsArray(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("POST /api/alarms", http.StatusCreated, map[string]any{"id": 1})

	_, err := newTestClient(srv, weekday.Zero).CreateAlarm(context.Background(), models.AlarmInput{
		Time: "08:15", Duration: 20,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":"08:15","days":[],"duration":20,"active":false}`, dev.last().Body)
}

func TestCreateAlarm_ServerErrorMessage(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("POST /api/alarms", http.StatusBadRequest, map[string]string{
		"error": "time and positive duration are required",
	})

	_, err := newTestClient(srv, weekday.Zero).CreateAlarm(context.Background(), models.AlarmInput{Time: "08:15"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "time and positive duration are required", apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestUpdateAlarm_UsesIDInPath(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("PUT /api/alarms/7", http.StatusOK, map[string]string{"status": "ok"})

	err := newTestClient(srv, weekday.Zero).UpdateAlarm(context.Background(), 7, models.AlarmInput{
		Time: "09:00", Days: []int{5, 6}, Duration: 15, Active: false,
	})
	require.NoError(t, err)

	req := dev.last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.JSONEq(t, `{"time":"09:00","days":[5,6],"duration":15,"active":false}`, req.Body)
}

func TestDeleteAlarm_NotFoundWithoutBody(t *testing.T) {
	_, srv := newFakeDevice(t)

	err := newTestClient(srv, weekday.Zero).DeleteAlarm(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "delete alarm 42")
}

func TestGetTime(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("GET /api/time", http.StatusOK, map[string]string{"time": "12:34:56", "date": "16.10.2026"})

	got, err := newTestClient(srv, weekday.Zero).GetTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ServerTime{Time: "12:34:56", Date: "16.10.2026"}, got)
}

func TestAudioCommands_QueryParameters(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("POST /api/audio/track", http.StatusOK, map[string]any{"status": "playing", "track": 3})
	dev.handle("POST /api/audio/volume", http.StatusOK, map[string]any{"status": "ok", "volume": 25})
	c := newTestClient(srv, weekday.Zero)

	st, err := c.PlayTrack(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Track)
	assert.Equal(t, "num=3", dev.last().Query)
	assert.Empty(t, dev.last().Body)

	st, err = c.SetVolume(context.Background(), 25)
	require.NoError(t, err)
	require.NotNil(t, st.Volume)
	assert.Equal(t, 25, *st.Volume)
	assert.Equal(t, "value=25", dev.last().Query)
}

func TestAudioCommand_DeviceError(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("POST /api/audio/track", http.StatusBadRequest, map[string]string{"error": "invalid track number"})

	_, err := newTestClient(srv, weekday.Zero).PlayTrack(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid track number")
}

func TestPushSettingsAndTrigger(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("POST /api/settings", http.StatusOK, map[string]string{"status": "ok"})
	dev.handle("POST /api/trigger", http.StatusOK, map[string]string{"status": "ok"})
	c := newTestClient(srv, weekday.Zero)

	require.NoError(t, c.PushSettings(context.Background(), models.Settings{
		Duration: 30, Volume: 20, AutoSync: true, Timezone: "UTC+3",
	}))
	assert.JSONEq(t, `{"duration":30,"volume":20,"autoSync":true,"timezone":"UTC+3"}`, dev.last().Body)

	require.NoError(t, c.Trigger(context.Background(), models.TriggerPayload{Duration: 10, Volume: 15}))
	assert.JSONEq(t, `{"duration":10,"volume":15}`, dev.last().Body)
}

func TestTemplates(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.handle("GET /api/templates", http.StatusOK, map[string]any{
		"templates": []map[string]any{
			{"name": "retreat", "duration": 10, "alarms": []map[string]any{{"time": "04:00", "days": []int{1, 2}}}},
		},
	})
	dev.handle("POST /api/templates", http.StatusOK, map[string]string{"status": "ok"})
	dev.handle("POST /api/templates/0/apply", http.StatusOK, map[string]string{"status": "ok"})
	dev.handle("DELETE /api/templates/0", http.StatusOK, map[string]string{"status": "ok"})
	c := newTestClient(srv, weekday.One)
	ctx := context.Background()

	list, err := c.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []int{0, 1}, list[0].Alarms[0].Days)

	require.NoError(t, c.CreateTemplate(ctx, models.Template{
		Name: "short", Duration: 1,
		Alarms: []models.TemplateAlarm{{Time: "05:00", Days: []int{6}}},
	}))
	assert.JSONEq(t, `{"name":"short","duration":1,"alarms":[{"time":"05:00","days":[7]}]}`, dev.last().Body)

	require.NoError(t, c.ApplyTemplate(ctx, 0))
	require.NoError(t, c.DeleteTemplate(ctx, 0))
	assert.Equal(t, http.MethodDelete, dev.last().Method)
}

func TestSetWiFi_FormEncoded(t *testing.T) {
	dev, srv := newFakeDevice(t)
	dev.mu.Lock()
	dev.routes["POST /api/wifi"] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "SSID и пароль обязательны")
	}
	dev.mu.Unlock()

	err := newTestClient(srv, weekday.Zero).SetWiFi(context.Background(), "home", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SSID и пароль обязательны")

	req := dev.last()
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	assert.Contains(t, req.Body, "ssid=home")
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := newTestClient(srv, weekday.Zero).ListAlarms(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures carry no status")
	assert.Contains(t, err.Error(), "list alarms")
}
