package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Aidin1998/pxegate/api"
	"github.com/Aidin1998/pxegate/common/apiutil"
	"github.com/Aidin1998/pxegate/internal/gateway"
	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/Aidin1998/pxegate/internal/pxe/pxetest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const uiOrigin = "http://localhost:4001"

type fixture struct {
	router *gin.Engine
	node   *pxetest.Node
	dials  *atomic.Int32
}

// helper to set up router against a fake node
func setupRouter(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()

	node := pxetest.NewNode(t)
	dials := new(atomic.Int32)
	dial := func(ctx context.Context, url string) (pxe.Client, error) {
		dials.Add(1)
		return pxe.Dial(ctx, url)
	}
	session := pxe.NewSession(node.URL(), dial, logger)
	t.Cleanup(session.Close)

	srv := api.NewServer(logger, gateway.NewService(logger, session, 0), uiOrigin)
	return &fixture{router: srv.Router(), node: node, dials: dials}
}

func (f *fixture) get(path string, header http.Header) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeString(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func TestStart_Connected(t *testing.T) {
	f := setupRouter(t)
	w := f.get("/start", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.ConnectedMessage, decodeString(t, w))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, 1, f.node.Calls("getNodeInfo"))
}

func TestStart_Unreachable(t *testing.T) {
	f := setupRouter(t)
	f.node.Close()

	w := f.get("/start", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apiutil.GenericFailureMessage, w.Body.String())
}

func TestStart_NodeError(t *testing.T) {
	f := setupRouter(t)
	f.node.FailNext("getNodeInfo", assert.AnError)

	w := f.get("/start", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apiutil.GenericFailureMessage, w.Body.String())

	// the handle survives and the next attempt reuses it
	w = f.get("/start", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), f.dials.Load())
}

func TestStart_Twice(t *testing.T) {
	f := setupRouter(t)
	for i := 0; i < 2; i++ {
		w := f.get("/start", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, api.ConnectedMessage, decodeString(t, w))
	}
	assert.Equal(t, int32(1), f.dials.Load())
	assert.Equal(t, 2, f.node.Calls("getNodeInfo"))
}

func TestShowAccounts_BeforeStart(t *testing.T) {
	f := setupRouter(t)
	w := f.get("/show_accounts", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apiutil.GenericFailureMessage, w.Body.String())
	assert.Equal(t, int32(0), f.dials.Load())
	assert.Equal(t, 0, f.node.Calls("getRegisteredAccounts"))
}

func TestShowAccounts_AfterStart(t *testing.T) {
	tests := []struct {
		name     string
		accounts []pxe.CompleteAddress
	}{
		{"none", nil},
		{"three", []pxe.CompleteAddress{
			{Address: pxe.MustAddress("0x01")},
			{Address: pxe.MustAddress("0x02")},
			{Address: pxe.MustAddress("0x03")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupRouter(t)
			f.node.SetAccounts(tt.accounts...)
			require.Equal(t, http.StatusOK, f.get("/start", nil).Code)

			w := f.get("/show_accounts", nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, api.AccountsShowedMessage, decodeString(t, w))
			assert.Equal(t, 1, f.node.Calls("getRegisteredAccounts"))
		})
	}
}

func TestShowAccounts_NodeError(t *testing.T) {
	f := setupRouter(t)
	require.Equal(t, http.StatusOK, f.get("/start", nil).Code)
	f.node.FailNext("getRegisteredAccounts", assert.AnError)

	w := f.get("/show_accounts", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apiutil.GenericFailureMessage, w.Body.String())
}

func TestCORS(t *testing.T) {
	f := setupRouter(t)

	w := f.get("/start", http.Header{"Origin": {uiOrigin}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uiOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	w = f.get("/start", http.Header{"Origin": {"http://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = f.get("/show_accounts", http.Header{"Origin": {"http://localhost:3000"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	f := setupRouter(t)
	req, _ := http.NewRequest(http.MethodOptions, "/start", nil)
	req.Header.Set("Origin", uiOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, uiOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestHealthCheck(t *testing.T) {
	f := setupRouter(t)
	w := f.get("/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["connected"])

	f.get("/start", nil)
	w = f.get("/health", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["connected"])
}

func TestMetrics(t *testing.T) {
	f := setupRouter(t)
	f.get("/start", nil)

	w := f.get("/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pxegate_gateway_operations_total")
	assert.Contains(t, w.Body.String(), "pxegate_http_requests_total")
}

func TestStart_ConcurrentRequestsDialOnce(t *testing.T) {
	f := setupRouter(t)
	done := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- f.get("/start", nil).Code
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, http.StatusOK, <-done)
	}
	assert.Equal(t, int32(1), f.dials.Load())
}

func newIdleServer() *api.Server {
	logger := zap.NewNop()
	session := pxe.NewSession("http://127.0.0.1:1", pxe.Dial, logger)
	return api.NewServer(logger, gateway.NewService(logger, session, 0), uiOrigin)
}

func TestShutdown_BeforeStart(t *testing.T) {
	srv := newIdleServer()
	require.NoError(t, srv.Shutdown(context.Background()))

	// a signal that lands before the listener is up still stops the server
	done := make(chan error, 1)
	go func() { done <- srv.Start("127.0.0.1:0") }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestStart_ShutdownFromAnotherGoroutine(t *testing.T) {
	srv := newIdleServer()
	done := make(chan error, 1)
	go func() { done <- srv.Start("127.0.0.1:0") }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}
