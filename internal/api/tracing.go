package api

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func (s *Server) withTracing(next http.Handler) http.Handler {
	if s.tracer == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeLabel(r.URL.Path)
		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		attrs := []attribute.KeyValue{
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.String("http.target", r.URL.Path),
		}
		if jobID := jobIDFromPath(r.URL.Path); jobID != "" {
			attrs = append(attrs, attribute.String("card.job_id", jobID))
		}
		span.SetAttributes(attrs...)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", recorder.status))
		if recorder.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(recorder.status))
		}
	})
}

// jobIDFromPath pulls the job id out of /v1/cards/{id}[/start]. The tracing
// middleware wraps the mux, so PathValue is not populated yet here.
func jobIDFromPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/v1/cards/")
	if !ok || rest == "" {
		return ""
	}
	jobID, _, _ := strings.Cut(rest, "/")
	return jobID
}
