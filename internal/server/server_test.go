package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
)

type staticEvents struct{}

func (staticEvents) Current() domain.WorldEvent { return domain.EventFoggy }
func (staticEvents) Hour() int64 { return 1 }

type staticLoop struct{}

func (staticLoop) State() string { return "stopped" }
func (staticLoop) Paused() bool { return false }

func TestRouter_Routes(t *testing.T) {
	router := NewRouter(Deps{
		Ducks:  ducks.NewRegistry(),
		Events: staticEvents{},
		Loop:   staticLoop{},
		Now:    func() time.Time { return time.Unix(0, 0) },
	})

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/healthz", http.StatusOK, `"status":"ok"`},
		{"/readyz", http.StatusOK, `"status":"ok"`},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/api/v1/ducks", http.StatusOK, `"total":0`},
		{"/api/v1/channels/c1/ducks", http.StatusOK, `"channel_id":"c1"`},
		{"/api/v1/event", http.StatusOK, `"event":"foggy"`},
		{"/api/v1/loop", http.StatusOK, `"state":"stopped"`},
		{"/api/v1/nope", http.StatusNotFound, ""},
		{"/swagger/index.html", http.StatusOK, "swagger-ui"},
		{"/swagger/doc.json", http.StatusOK, `"/api/v1/channels/{channelID}/ducks"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			require.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}
