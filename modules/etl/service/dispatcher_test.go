package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seeg/recruiting-platform/internal/config"
	"github.com/seeg/recruiting-platform/internal/platform/logger"
	"github.com/seeg/recruiting-platform/modules/etl/model"
)

type fakeReconcileRepo struct {
	entries []string
}

func (f *fakeReconcileRepo) Create(ctx context.Context, applicationID, reason string) error {
	f.entries = append(f.entries, applicationID)
	return nil
}
func (f *fakeReconcileRepo) ListUnresolved(ctx context.Context) ([]*model.ReconciliationEntry, error) {
	return nil, nil
}
func (f *fakeReconcileRepo) MarkResolved(ctx context.Context, id string) error { return nil }

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("error", "console")
	require.NoError(t, err)
	return l
}

func TestDispatcher_Enqueue_SucceedsOnFirstAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	reconcile := &fakeReconcileRepo{}
	d := NewDispatcher(config.WebhookConfig{Secret: "s", APIBaseURL: server.URL}, reconcile, newTestLogger(t))

	d.Enqueue("app-1")

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 10*time.Millisecond)
	require.Empty(t, reconcile.entries)
}

func TestDispatcher_Enqueue_RecordsReconciliationAfterExhaustingRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	reconcile := &fakeReconcileRepo{}
	d := NewDispatcher(config.WebhookConfig{Secret: "s", APIBaseURL: server.URL}, reconcile, newTestLogger(t))

	d.Enqueue("app-2")

	require.Eventually(t, func() bool { return len(reconcile.entries) == 1 }, 5*time.Second, 20*time.Millisecond)
	require.Equal(t, "app-2", reconcile.entries[0])
}
