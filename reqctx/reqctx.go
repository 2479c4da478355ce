package reqctx

import (
	"context"
	"net"
	"net/http"
	"os"
	"strings"
)

// Header names and environment variables consulted by ClientIP, in order.
const (
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderClientIP     = "Clientip"

	EnvForwardedFor = "HTTP_X_FORWARDED_FOR"
	EnvClientIP     = "HTTP_CLIENTIP"
	EnvRemoteAddr   = "REMOTE_ADDR"
)

// DefaultClientIP is reported when no source names a client
const DefaultClientIP = "127.0.0.1"

// Request is read-only access to the inbound request being served. The
// boolean results report presence; a present value may be empty.
type Request interface {
	Header(name string) (string, bool)
	RemoteAddr() (string, bool)
	RequestURI() (string, bool)
}

// Env looks up an environment variable, returning "" when unset
type Env func(key string) string

type ctxKey struct{}

// NewContext returns a copy of ctx carrying req
func NewContext(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, ctxKey{}, req)
}

// FromContext returns the request stored in ctx, if any
func FromContext(ctx context.Context) (Request, bool) {
	if ctx == nil {
		return nil, false
	}
	req, ok := ctx.Value(ctxKey{}).(Request)
	return req, ok && req != nil
}

// Middleware binds every request into its own context so loggers called
// from handlers can find it. It fits net/http and chi's Use.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), FromHTTP(r))))
	})
}

// ClientIP resolves the best-known client address: the X-Forwarded-For
// header, the Clientip header, the remote address, then the equivalent
// environment variables, else DefaultClientIP. A forwarded chain is cut
// down to its first hop. env may be nil for os.Getenv.
func ClientIP(ctx context.Context, env Env) string {
	if env == nil {
		env = os.Getenv
	}

	ip, found := "", false
	if req, ok := FromContext(ctx); ok {
		if ip, found = req.Header(HeaderForwardedFor); !found {
			if ip, found = req.Header(HeaderClientIP); !found {
				ip, found = req.RemoteAddr()
			}
		}
	}
	if !found {
		for _, key := range [...]string{EnvForwardedFor, EnvClientIP, EnvRemoteAddr} {
			if v := env(key); v != "" {
				ip, found = v, true
				break
			}
		}
	}
	if !found {
		ip = DefaultClientIP
	}

	// A comma at index 0 has no first hop before it; keep the value whole
	if i := strings.IndexByte(ip, ','); i > 0 {
		ip = ip[:i]
	}
	return strings.TrimSpace(ip)
}

// RequestURI returns the URI of the request in ctx, or "" outside a request
func RequestURI(ctx context.Context) string {
	if req, ok := FromContext(ctx); ok {
		if uri, ok := req.RequestURI(); ok {
			return uri
		}
	}
	return ""
}

type httpRequest struct {
	r *http.Request
}

// FromHTTP adapts an *http.Request. The remote address drops its port.
func FromHTTP(r *http.Request) Request {
	return httpRequest{r: r}
}

func (h httpRequest) Header(name string) (string, bool) {
	vals, ok := h.r.Header[http.CanonicalHeaderKey(name)]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.Join(vals, ","), true
}

func (h httpRequest) RemoteAddr() (string, bool) {
	addr := h.r.RemoteAddr
	if addr == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host, true
	}
	return addr, true
}

func (h httpRequest) RequestURI() (string, bool) {
	if h.r.RequestURI != "" {
		return h.r.RequestURI, true
	}
	if h.r.URL != nil {
		return h.r.URL.RequestURI(), true
	}
	return "", false
}

// Info is a static Request for work that is not driven by net/http,
// such as queue consumers or tests. Empty fields count as absent.
type Info struct {
	ForwardedFor string
	ClientIP     string
	Addr         string
	URI          string
}

// Header implements Request
func (i Info) Header(name string) (string, bool) {
	switch http.CanonicalHeaderKey(name) {
	case HeaderForwardedFor:
		return i.ForwardedFor, i.ForwardedFor != ""
	case HeaderClientIP:
		return i.ClientIP, i.ClientIP != ""
	}
	return "", false
}

// RemoteAddr implements Request
func (i Info) RemoteAddr() (string, bool) {
	return i.Addr, i.Addr != ""
}

// RequestURI implements Request
func (i Info) RequestURI() (string, bool) {
	return i.URI, i.URI != ""
}
