package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/sipconfig/internal/sip"
	"github.com/sjzar/sipconfig/internal/sipconfig/conf"
	"github.com/sjzar/sipconfig/internal/sipconfig/watch"
)

type hookConfig struct{ w *conf.Webhook }

func (c hookConfig) GetWebhook() *conf.Webhook { return c.w }

type received struct {
	mu     sync.Mutex
	bodies [][]byte
	tokens []string
}

func recorder(t *testing.T, status int) (*httptest.Server, *received) {
	t.Helper()
	rec := &received{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.bodies = append(rec.bodies, b)
		rec.tokens = append(rec.tokens, r.Header.Get("X-Token"))
		rec.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func event() watch.Event {
	return watch.Event{
		Changes: []watch.Change{{ConfigFlag: "sip", Column: "enabled", Old: sip.Int(true), New: sip.Int(false)}},
		Rows:    []sip.Row{{ConfigFlag: "sip", Enabled: sip.Int(false)}},
		Time:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNew_SkipsDisabled(t *testing.T) {
	s := New(hookConfig{&conf.Webhook{Items: []*conf.WebhookItem{
		{URL: "http://127.0.0.1:1/a"},
		{URL: "http://127.0.0.1:1/b", Disabled: true},
		{URL: ""},
		nil,
	}}})
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, 0, New(hookConfig{}).Len())
}

func TestNotify_Posts(t *testing.T) {
	srv1, rec1 := recorder(t, http.StatusOK)
	srv2, rec2 := recorder(t, http.StatusNoContent)

	s := New(hookConfig{&conf.Webhook{Items: []*conf.WebhookItem{
		{URL: srv1.URL, Headers: map[string]string{"X-Token": "abc"}},
		{URL: srv2.URL},
	}}})
	s.Notify(context.Background(), event())

	require.Len(t, rec1.bodies, 1)
	require.Len(t, rec2.bodies, 1)
	assert.Equal(t, "abc", rec1.tokens[0])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec1.bodies[0], &payload))
	assert.Contains(t, payload, "changes")
	assert.Contains(t, payload, "rows")
	assert.Equal(t, "2024-05-01T12:00:00Z", payload["time"])
}

func TestHookDo_Status(t *testing.T) {
	srv, _ := recorder(t, http.StatusInternalServerError)
	h := &Hook{conf: &conf.WebhookItem{URL: srv.URL}, client: srv.Client()}
	assert.Error(t, h.Do(context.Background(), []byte(`{}`)))
}

func TestNotify_NoHooks(t *testing.T) {
	New(hookConfig{}).Notify(context.Background(), event())
}
