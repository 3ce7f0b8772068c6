// Package debugsrv serves the host display and metrics over HTTP.
package debugsrv

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	xdraw "golang.org/x/image/draw"

	"picoclock/hal"
	"picoclock/internal/logger"
)

// PreviewScale is the zoom applied to /display.png.
const PreviewScale = 2

// FrameSource returns the last presented frame. A nil frame or one with
// Seq 0 means nothing has been presented yet.
type FrameSource interface {
	Snapshot() *hal.Frame
}

// Handler returns the debug mux: / redirects to /display.png, which serves
// the last frame, and /metrics exposes g.
func Handler(src FrameSource, g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		http.Redirect(w, req, "/display.png", http.StatusFound)
	})
	mux.HandleFunc("/display.png", func(w http.ResponseWriter, req *http.Request) {
		serveFrame(w, req, src)
	})
	if g != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
	return mux
}

func serveFrame(w http.ResponseWriter, req *http.Request, src FrameSource) {
	f := src.Snapshot()
	if f == nil || f.Seq == 0 || f.Width <= 0 || f.Height <= 0 {
		http.Error(w, "no frame", http.StatusServiceUnavailable)
		return
	}
	img := Scale(f.RGBA(), PreviewScale)

	w.Header().Set("content-type", "image/png")
	w.Header().Set("cache-control", "no-store")
	w.Header().Set("x-frame-seq", strconv.FormatUint(f.Seq, 10))
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		logger.Errorf(req.Context(), "encoding image: %v", err)
	}
}

// Scale enlarges src by an integer factor with nearest-neighbour sampling.
func Scale(src image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// Server runs the debug handler on a listener.
type Server struct {
	srv  *http.Server
	ln   net.Listener
	done chan error
}

// Start listens on addr and serves h in the background.
func Start(ctx context.Context, addr string, h http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	s := &Server{
		srv: &http.Server{
			Handler:           h,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:   ln,
		done: make(chan error, 1),
	}
	go func() {
		logger.Infof(ctx, "http server listening on %s", ln.Addr())
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
		close(s.done)
	}()
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Done reports the serve loop's exit error, nil after Shutdown.
func (s *Server) Done() <-chan error { return s.done }

// Shutdown stops the server, waiting up to one second for open requests.
func (s *Server) Shutdown(ctx context.Context) error {
	tctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := s.srv.Shutdown(tctx); err != nil {
		return fmt.Errorf("shutdown debug server: %w", err)
	}
	return nil
}
