package browser

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Receiver is the loopback HTTP listener the third-party authorization flow
// redirects back to. Each callback request is published on the bus tagged
// with the receiver's own origin, so consumers can discard anything that
// claims a different source.
type Receiver struct {
	addr string
	bus  *Bus
	srv  *http.Server
}

func NewReceiver(addr string, bus *Bus) *Receiver {
	return &Receiver{addr: addr, bus: bus}
}

// Origin returns the origin messages from this receiver are tagged with.
func (r *Receiver) Origin() string {
	return "http://" + r.addr
}

// Start begins serving the callback endpoint. It returns once the listener
// is bound; serving continues in the background until Shutdown.
func (r *Receiver) Start() error {
	ln, err := net.Listen("tcp", r.addr)
	if err != nil {
		return fmt.Errorf("binding callback listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/membership/callback", r.handleCallback)

	r.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := r.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			// nothing to do: the session is torn down with the receiver
			_ = err
		}
	}()
	return nil
}

func (r *Receiver) handleCallback(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	code := q.Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	r.bus.Publish(Message{
		Origin: r.Origin(),
		State:  q.Get("state"),
		Code:   code,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><p>Verification received. You can close this window and return to GlidePath.</p></body></html>")
}

// Shutdown stops the listener.
func (r *Receiver) Shutdown(ctx context.Context) error {
	if r.srv == nil {
		return nil
	}
	return r.srv.Shutdown(ctx)
}
