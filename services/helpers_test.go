package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/models"
)

// fakeGame 按路径前缀分发的假服务端，统计请求次数
type fakeGame struct {
	srv      *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int
	total    int32
}

func newFakeGame(t *testing.T) *fakeGame {
	t.Helper()
	f := &fakeGame{
		handlers: make(map[string]http.HandlerFunc),
		hits:     make(map[string]int),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeGame) serve(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.total, 1)
	prefix := "/" + strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)[0]

	f.mu.Lock()
	f.hits[prefix]++
	h, ok := f.handlers[prefix]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "route inconnue"})
		return
	}
	h(w, r)
}

func (f *fakeGame) handle(prefix string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[prefix] = h
}

func (f *fakeGame) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[prefix]
}

func (f *fakeGame) requests() int {
	return int(atomic.LoadInt32(&f.total))
}

func (f *fakeGame) client(timeout time.Duration) *APIClient {
	return NewAPIClient(f.srv.URL, timeout, zap.NewNop())
}

// registerAs 让假服务端接受注册并返回给定坐标
func (f *fakeGame) registerAs(id string, x, y int) {
	f.handle("/inscription", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.RegisterResponse{PlayerID: id, X: x, Y: y})
	})
}

func (f *fakeGame) turnIs(turn int) {
	f.handle("/tour", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.TurnResponse{Turn: turn})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

var errConnectionReset = errors.New("connection reset by peer")

// failingOn 对指定路径前缀模拟传输失败，其他请求正常转发
func failingOn(prefix string) *http.Client {
	return &http.Client{
		Timeout: time.Second,
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if strings.HasPrefix(r.URL.Path, prefix) {
				return nil, errConnectionReset
			}
			return http.DefaultTransport.RoundTrip(r)
		}),
	}
}

// registeredClient 返回已在 (5,5) 注册为 p1 的组件
func registeredClient(t *testing.T, f *fakeGame, api *APIClient) (*Session, *Movement, *Vision) {
	t.Helper()
	f.registerAs("p1", 5, 5)
	session := NewSession()
	if _, _, err := NewRegistration(api, session, nil).Register("alice", models.Villager); err != nil {
		t.Fatalf("Register: %v", err)
	}
	turns := NewTurnQuery(api, session, nil)
	return session, NewMovement(api, session, turns, nil), NewVision(api, session, nil)
}
