package router

import (
	"net/http"
	"strings"

	"github.com/mistauth/mist/internal/pkg/instrument"
	"github.com/mistauth/mist/internal/pkg/uid"
)

const (
	// HeaderCorrelationID tracks a request end-to-end across services.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is the alternative name some proxies send.
	HeaderRequestID = "X-Request-ID"
)

// middlewareCorrelationID adopts the caller's correlation ID when one was
// sent, mints one otherwise, and echoes it on the response so clients can
// quote it in bug reports.
func middlewareCorrelationID(uid uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := sanitizeCID(r.Header.Get(HeaderCorrelationID))
			if cid == "" {
				cid = sanitizeCID(r.Header.Get(HeaderRequestID))
			}
			if cid == "" && uid != nil {
				cid = uid.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// sanitizeCID drops values that could split log lines or headers and caps
// the length so a hostile client cannot bloat every log record.
func sanitizeCID(v string) string {
	if strings.ContainsAny(v, "\r\n") {
		return ""
	}
	v = strings.TrimSpace(v)

	const maxLen = 128
	if len(v) > maxLen {
		v = v[:maxLen]
	}
	return v
}
