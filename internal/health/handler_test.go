package health

import (
	"bookit/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakeMongo struct{ err error }

func (f fakeMongo) Ping(context.Context, *readpref.ReadPref) error { return f.err }

type fakeRedis struct{ err error }

func (f fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.err)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		mongoErr   error
		redis      RedisPinger
		wantStatus int
		want       HealthResponse
	}{
		{
			name:       "mongo only",
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ready", Database: "ok"},
		},
		{
			name:       "mongo down",
			mongoErr:   errors.New("no reachable servers"),
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "unavailable", Database: "error"},
		},
		{
			name:       "with redis",
			redis:      fakeRedis{},
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ready", Database: "ok", Cache: "ok"},
		},
		{
			name:       "redis down",
			redis:      fakeRedis{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "unavailable", Database: "ok", Cache: "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(fakeMongo{err: tt.mongoErr}, logger.Discard())
			if tt.redis != nil {
				h.WithRedis(tt.redis)
			}
			router := httprouter.New()
			h.RegisterRoutes(router)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			var got HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler(fakeMongo{err: errors.New("down")}, logger.Discard())
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil), nil)

	if rr.Code != http.StatusOK {
		t.Errorf("liveness must not depend on the database, got %d", rr.Code)
	}
}
