// Package reqctx gives loggers read-only access to the request being
// served without depending on a particular web framework.
//
// A Request travels in a context.Context. Middleware stores each
// inbound *http.Request; code outside net/http can store an Info value
// with NewContext. Outside any request, ClientIP falls back to the CGI
// style environment variables and finally to 127.0.0.1, and RequestURI
// is empty.
package reqctx
