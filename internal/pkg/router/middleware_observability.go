package router

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/mistauth/mist/internal/pkg/config"
	"github.com/mistauth/mist/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Bodies larger than this are truncated before logging.
const logBodyLimit = 32 * 1024

// fieldMask hides sensitive keys (lowercased) in logged headers and bodies.
type fieldMask map[string]struct{}

func newFieldMask(cfg config.Config) fieldMask {
	fm := make(fieldMask)
	if cfg == nil {
		return fm
	}
	for _, field := range cfg.GetArray("instrument.log_mask_fields") {
		field = strings.TrimSpace(strings.ToLower(field))
		if field != "" {
			fm[field] = struct{}{}
		}
	}
	return fm
}

func (fm fieldMask) hidden(key string) bool {
	_, found := fm[strings.ToLower(key)]
	return found
}

func (fm fieldMask) headers(headers http.Header) http.Header {
	if len(fm) == 0 {
		return headers
	}
	result := headers.Clone()
	for key := range result {
		if fm.hidden(key) {
			result.Set(key, "***")
		}
	}
	return result
}

func (fm fieldMask) value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		masked := make(map[string]any, len(val))
		for k, inner := range val {
			if fm.hidden(k) {
				masked[k] = "***"
			} else {
				masked[k] = fm.value(inner)
			}
		}
		return masked
	case []any:
		res := make([]any, len(val))
		for i, inner := range val {
			res[i] = fm.value(inner)
		}
		return res
	default:
		return v
	}
}

// body renders a request or response body for logging. JSON and form bodies
// are parsed so their fields can be masked; anything else is logged as text
// when printable.
func (fm fieldMask) body(contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		return fm.value(parsed)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil {
			masked := make(map[string]any, len(values))
			for k, v := range values {
				switch {
				case fm.hidden(k):
					masked[k] = "***"
				case len(v) == 1:
					masked[k] = v[0]
				default:
					masked[k] = v
				}
			}
			return masked
		}
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	if len(body) > logBodyLimit {
		return string(body[:logBodyLimit]) + "...(truncated)"
	}
	return string(body)
}

// responseTap records the status, byte count, and a capped copy of the body
// written by the downstream handler.
type responseTap struct {
	http.ResponseWriter
	status int
	bytes  int
	body   bytes.Buffer
	capped bool
	err    error
}

func (w *responseTap) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseTap) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if !w.capped && len(p) > 0 {
		remaining := logBodyLimit - w.body.Len()
		switch {
		case remaining <= 0:
			w.capped = true
		case len(p) > remaining:
			w.body.Write(p[:remaining])
			w.capped = true
		default:
			w.body.Write(p)
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *responseTap) SetError(err error) { w.err = err }

func (w *responseTap) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *responseTap) loggedBody(fm fieldMask) any {
	var respBody any
	raw := w.body.Bytes()

	var parsed any
	switch {
	case json.Unmarshal(raw, &parsed) == nil:
		respBody = fm.value(parsed)
	case utf8.Valid(raw):
		respBody = w.body.String()
	case len(raw) > 0:
		respBody = "<binary body omitted>"
	}

	if w.capped {
		respBody = map[string]any{"body": respBody, "truncated": true}
	}
	return respBody
}

func (w *responseTap) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

//nolint:err113 // it use dynamic error
func (w *responseTap) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

func (w *responseTap) Push(target string, opts *http.PushOptions) error {
	if p, ok := w.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}

func matchedRoutePath(r *http.Request) string {
	pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath()
	if pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// snoopRequestBody reads up to the log limit and splices the bytes back so
// the handler still sees the full body.
func snoopRequestBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}

	limited := io.LimitReader(r.Body, logBodyLimit+1)
	//nolint:errcheck // best effort for logging only
	head, _ := io.ReadAll(limited)
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(head), r.Body))
	if len(head) > logBodyLimit {
		return head[:logBodyLimit]
	}
	return head
}

func logRequest(ctx context.Context, r *http.Request, route string, body []byte, fm fieldMask) {
	slog.InfoContext(
		ctx,
		"request received",
		"method", r.Method,
		"path", route,
		"uri", r.RequestURI,
		"headers", fm.headers(r.Header),
		"body", fm.body(r.Header.Get("Content-Type"), body),
	)
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	fm := newFieldMask(cfg)
	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")

	requestCounter, err := meter.Int64Counter("http.server.requests", metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	durationHistogram, err := meter.Float64Histogram("http.server.duration", metric.WithDescription("HTTP request duration in milliseconds"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx, span := tracer.Start(
				r.Context(),
				r.Method+" "+route,
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
				),
			)
			defer span.End()

			logRequest(ctx, r, route, snoopRequestBody(r), fm)

			tap := &responseTap{ResponseWriter: w}
			next.ServeHTTP(tap, r.WithContext(ctx))

			status := tap.statusCode()
			elapsedMs := float64(time.Since(start).Milliseconds())

			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(status),
			}

			if tap.err != nil {
				span.RecordError(tap.err)
			}

			switch {
			case status < 500:
				span.SetStatus(codes.Ok, "")
			case tap.err != nil:
				span.SetStatus(codes.Error, tap.err.Error())
			default:
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			span.SetAttributes(attrs...)
			span.SetAttributes(
				semconv.NetworkProtocolVersionKey.String(r.Proto),
				semconv.ServerAddressKey.String(r.Host),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
				attribute.Int("http.response_content_length", tap.bytes),
			)

			if requestCounter != nil {
				requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if durationHistogram != nil {
				durationHistogram.Record(ctx, elapsedMs, metric.WithAttributes(attrs...))
			}

			slog.InfoContext(
				ctx,
				"response sent",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"status", status,
				"bytes", tap.bytes,
				"latency_ms", time.Since(start).Milliseconds(),
				"body", tap.loggedBody(fm),
			)
		})
	}
}
