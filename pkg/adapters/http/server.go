package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/aretw0/flowguard"
	"github.com/aretw0/flowguard/pkg/activation"
	"github.com/aretw0/flowguard/pkg/domain"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodyBytes bounds request bodies; flows are capped at a few hundred blocks.
const maxBodyBytes = 4 << 20

// LoadSpec parses the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// Server serves the validation and activation API.
type Server struct {
	Validator *flowguard.Validator
	Service   *activation.Service
	Metrics   http.Handler
	Logger    *slog.Logger
}

// NewHandler creates the HTTP handler. Requests under /v1 are checked against the
// embedded OpenAPI document before reaching the handlers.
func NewHandler(s *Server) (http.Handler, error) {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Validator == nil {
		s.Validator = flowguard.New()
	}

	doc, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc, s.Logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.Logger, http.StatusOK, map[string]string{
			"app":         "flowguard-http",
			"version":     strings.TrimSpace(flowguard.Version),
			"api_version": doc.Info.Version,
		})
	})
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(limitBody, validate)

		r.Post("/validate", s.ValidateFlow)

		r.Group(func(r chi.Router) {
			r.Use(s.requireService)

			r.Get("/flows", s.ListFlows)
			r.Put("/flows/{id}", s.SaveFlow)
			r.Delete("/flows/{id}", s.DeleteFlow)
			r.Get("/flows/{id}/validation", s.GetLatestReport)
			r.Post("/flows/{id}/validation", s.CheckFlow)
			r.Post("/flows/{id}/publish", s.PublishFlow)
			r.Post("/flows/{id}/deactivate", s.DeactivateFlow)
		})
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireService(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Service == nil {
			writeError(w, s.Logger, http.StatusNotImplemented, "flow storage is not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>flowguard API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok"})
}

// ValidateFlow handles the POST /v1/validate request.
func (s *Server) ValidateFlow(w http.ResponseWriter, r *http.Request) {
	var flow domain.Flow
	if err := json.NewDecoder(r.Body).Decode(&flow); err != nil {
		writeError(w, s.Logger, http.StatusBadRequest, "invalid request body")
		s.Logger.Warn("ValidateFlow: invalid request body", "error", err)
		return
	}

	res, err := s.Validator.Validate(&flow)
	if err != nil {
		writeError(w, s.Logger, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, res)
}

type flowSummary struct {
	ID     string            `json:"id"`
	Status domain.FlowStatus `json:"status"`
}

// ListFlows handles the GET /v1/flows request.
func (s *Server) ListFlows(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Service.Flows(r.Context())
	if err != nil {
		s.fail(w, "ListFlows", err)
		return
	}

	out := make([]flowSummary, 0, len(ids))
	for _, id := range ids {
		status, err := s.Service.Status(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrFlowNotFound) {
				continue // deleted meanwhile
			}
			s.fail(w, "ListFlows", err)
			return
		}
		out = append(out, flowSummary{ID: id, Status: status})
	}
	writeJSON(w, s.Logger, http.StatusOK, out)
}

// SaveFlow handles the PUT /v1/flows/{id} request.
func (s *Server) SaveFlow(w http.ResponseWriter, r *http.Request) {
	var flow domain.Flow
	if err := json.NewDecoder(r.Body).Decode(&flow); err != nil {
		writeError(w, s.Logger, http.StatusBadRequest, "invalid request body")
		return
	}
	flow.ID = chi.URLParam(r, "id")

	report, err := s.Service.Save(r.Context(), &flow)
	if err != nil {
		s.fail(w, "SaveFlow", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, report)
}

// DeleteFlow handles the DELETE /v1/flows/{id} request.
func (s *Server) DeleteFlow(w http.ResponseWriter, r *http.Request) {
	if err := s.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "DeleteFlow", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLatestReport handles the GET /v1/flows/{id}/validation request.
func (s *Server) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Service.LatestReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetLatestReport", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, report)
}

// CheckFlow handles the POST /v1/flows/{id}/validation request.
func (s *Server) CheckFlow(w http.ResponseWriter, r *http.Request) {
	report, err := s.Service.Check(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "CheckFlow", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, report)
}

// PublishFlow handles the POST /v1/flows/{id}/publish request.
// A refused publish answers 422 with the report, so editors can show the markers.
func (s *Server) PublishFlow(w http.ResponseWriter, r *http.Request) {
	report, err := s.Service.Publish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrFlowInvalid) {
			writeJSON(w, s.Logger, http.StatusUnprocessableEntity, report)
			return
		}
		s.fail(w, "PublishFlow", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, report)
}

// DeactivateFlow handles the POST /v1/flows/{id}/deactivate request.
func (s *Server) DeactivateFlow(w http.ResponseWriter, r *http.Request) {
	if err := s.Service.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "DeactivateFlow", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrFlowNotFound), errors.Is(err, domain.ErrReportNotFound):
		writeError(w, s.Logger, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNilNodes), errors.Is(err, domain.ErrNilEdges):
		writeError(w, s.Logger, http.StatusBadRequest, err.Error())
	default:
		writeError(w, s.Logger, http.StatusInternalServerError, "internal error")
		s.Logger.Error(op+" failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, map[string]string{"error": msg})
}
