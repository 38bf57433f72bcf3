package graph

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// DefaultPort is the local port the graph page is served on.
const DefaultPort = 8787

// Server serves a pre-rendered graph page on the loopback interface only.
type Server struct {
	port int
	html string
	srv  *http.Server
}

// NewServer creates a server for the given page. A non-positive port uses
// the default.
func NewServer(html string, port int) *Server {
	if port <= 0 {
		port = DefaultPort
	}
	return &Server{port: port, html: html}
}

// URL returns the address the page is reachable at.
func (s *Server) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", s.port)
}

// handler serves the page on the root path only; everything else is a 404.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(s.html))
	})
	return mux
}

// Start serves the page until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              net.JoinHostPort("127.0.0.1", fmt.Sprintf("%d", s.port)),
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
