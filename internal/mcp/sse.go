package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"payumcp/internal/ratelimiter"
)

// sseSession is one connected client: responses to its posted messages are
// queued on the channel and flushed down its event stream.
type sseSession struct {
	id  string
	out chan []byte
}

type sseTransport struct {
	server *Server

	mu       sync.Mutex
	sessions map[string]*sseSession
}

// RunSSE serves the protocol over HTTP: GET /sse opens a per-session event
// stream and POST /messages?sessionId= accepts JSON-RPC requests whose
// responses are pushed on that stream.
func (s *Server) RunSSE(ctx context.Context, addr string, limits ratelimiter.Config) error {
	t := &sseTransport{server: s, sessions: make(map[string]*sseSession)}

	srv := &http.Server{
		Addr:         addr,
		Handler:      t.routes(limits),
		WriteTimeout: 0, // event streams stay open
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error, 1)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdown <- srv.Shutdown(sctx)
	}()

	s.logger.Infow("sse transport listening", "addr", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return <-shutdown
}

func (t *sseTransport) routes(limits ratelimiter.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if limits.Enabled {
		r.Use(rateLimitMiddleware(ratelimiter.NewFixedWindow(limits.RequestsPerWindow, limits.Window)))
	}

	r.Get("/sse", t.handleStream)
	r.Post("/messages", t.handleMessage)
	return r
}

func (t *sseTransport) addSession() *sseSession {
	sess := &sseSession{id: uuid.New().String(), out: make(chan []byte, 16)}
	t.mu.Lock()
	t.sessions[sess.id] = sess
	t.mu.Unlock()
	return sess
}

func (t *sseTransport) removeSession(id string) {
	t.mu.Lock()
	delete(t.sessions, id)
	t.mu.Unlock()
}

func (t *sseTransport) session(id string) *sseSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions[id]
}

func (t *sseTransport) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sess := t.addSession()
	defer t.removeSession(sess.id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// the client posts its requests to the endpoint announced here
	fmt.Fprintf(w, "event: endpoint\ndata: /messages?sessionId=%s\n\n", sess.id)
	flusher.Flush()

	t.server.logger.Infow("sse session opened", "session", sess.id)

	for {
		select {
		case <-r.Context().Done():
			t.server.logger.Infow("sse session closed", "session", sess.id)
			return
		case msg := <-sess.out:
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (t *sseTransport) handleMessage(w http.ResponseWriter, r *http.Request) {
	sess := t.session(r.URL.Query().Get("sessionId"))
	if sess == nil {
		writeJSONError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request")
		return
	}

	resp := t.server.handle(r.Context(), &req)
	if resp != nil {
		data, err := json.Marshal(resp)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "encode response")
			return
		}
		select {
		case sess.out <- data:
		default:
			writeJSONError(w, http.StatusServiceUnavailable, "session backlog full")
			return
		}
	}

	w.WriteHeader(http.StatusAccepted)
}

func rateLimitMiddleware(fw *ratelimiter.FixedWindow) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ok, retryAfter := fw.Allow(r.RemoteAddr); !ok {
				w.Header().Set("Retry-After", retryAfter.Truncate(time.Second).String())
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	type envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&envelope{Success: false, Message: message, Status: status})
}
