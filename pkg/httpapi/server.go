// Package httpapi exposes the extraction pipeline over HTTP.
//
// The server accepts raw VUE documents and returns the extracted graph as
// JSON. It shares the pipeline Runner with the CLI, so caching and strict
// mode behave identically in both.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vuegraph/vuegraph/pkg/errors"
	"github.com/vuegraph/vuegraph/pkg/graph"
	"github.com/vuegraph/vuegraph/pkg/pipeline"
	"github.com/vuegraph/vuegraph/pkg/render"
)

// maxDocumentSize caps uploaded documents at 16 MiB. VUE maps are hand
// drawn; anything larger is not a map.
const maxDocumentSize = 16 << 20

// Server handles extraction requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around an existing pipeline runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/render", s.handleRender)
	})
	return r
}

// extractResponse is the JSON body returned by /v1/extract.
type extractResponse struct {
	Nodes      []*graph.Node `json:"nodes"`
	Links      []*graph.Link `json:"links"`
	Unresolved []int         `json:"unresolved,omitempty"`
	Hash       string        `json:"hash"`
	Cached     bool          `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	result, ok := s.runPipeline(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, extractResponse{
		Nodes:      result.Graph.Nodes(),
		Links:      result.Graph.Links(),
		Unresolved: result.Unresolved,
		Hash:       result.GraphHash,
		Cached:     result.CacheInfo.Hit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	result, ok := s.runPipeline(w, r)
	if !ok {
		return
	}
	dot := render.ToDOT(result.Graph)

	if r.URL.Query().Get("format") == "svg" {
		svg, err := render.RenderSVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "svg rendering failed"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(svg)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, dot)
}

// runPipeline reads the request body and executes extraction. On failure it
// writes the error response and returns ok=false.
func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request) (*pipeline.Result, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize+1))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "unable to read request body"))
		return nil, false
	}
	if len(data) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request body is empty"))
		return nil, false
	}
	if len(data) > maxDocumentSize {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "document exceeds size limit"))
		return nil, false
	}

	opts := pipeline.Options{
		Source:     data,
		SourceName: "http:" + middleware.GetReqID(r.Context()),
		Strict:     r.URL.Query().Get("strict") == "true",
		Refresh:    r.URL.Query().Get("refresh") == "true",
		Logger:     s.logger,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return result, true
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidMetadata,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnresolvedLinks:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeRunNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// logRequests logs one line per request with the structured logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
