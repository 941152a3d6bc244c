package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/errs"
	"github.com/koustreak/dbspec/internal/logger"
	"github.com/koustreak/dbspec/internal/probe"
	"github.com/koustreak/dbspec/internal/sqltype"
)

type ctxKey struct{}

type engineInfo struct {
	Name       string `json:"name"`
	EngineName string `json:"engine_name"`
}

type extractRequest struct {
	Message string            `json:"message"`
	Context map[string]string `json:"context"`
}

type renderRequest struct {
	Type       string              `json:"type"`
	Descriptor *sqltype.Descriptor `json:"descriptor"`
	Dialect    string              `json:"dialect"`
}

type probeRequest struct {
	DSN string `json:"dsn"`
}

type errorsResponse struct {
	Errors []errs.Error `json:"errors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListEngines(w http.ResponseWriter, _ *http.Request) {
	specs := s.registry.Specs()
	out := make([]engineInfo, 0, len(specs))
	for _, spec := range specs {
		out = append(out, engineInfo{Name: string(spec.Name()), EngineName: spec.EngineName()})
	}
	writeJSON(w, http.StatusOK, out)
}

// withSpec resolves {engine} and answers 404 for unknown engines.
func (s *Server) withSpec(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "engine")
		spec, err := s.registry.Get(name)
		if err != nil {
			writeError(w, http.StatusNotFound, "", err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, spec)))
	})
}

func specFrom(r *http.Request) engine.Spec {
	return r.Context().Value(ctxKey{}).(engine.Spec)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	spec := specFrom(r)

	var req extractRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, spec.EngineName(), err.Error())
		return
	}

	found := spec.ExtractErrors(req.Message, engine.Params(req.Context))
	logger.FromContext(r.Context()).Diagnosis(spec.EngineName(), req.Message, found)
	if found == nil {
		found = []errs.Error{}
	}
	writeJSON(w, http.StatusOK, errorsResponse{Errors: found})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	spec := specFrom(r)

	var req renderRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, spec.EngineName(), err.Error())
		return
	}

	var d sqltype.Descriptor
	switch {
	case req.Descriptor != nil:
		d = sqltype.New(req.Descriptor.Name)
		d.Length, d.Precision, d.Scale = req.Descriptor.Length, req.Descriptor.Precision, req.Descriptor.Scale
		d.Values, d.Unsigned, d.Zerofill = req.Descriptor.Values, req.Descriptor.Unsigned, req.Descriptor.Zerofill
		d.Charset, d.Collation = req.Descriptor.Charset, req.Descriptor.Collation
		if d.Name == "" {
			writeError(w, http.StatusBadRequest, spec.EngineName(), "descriptor.name is required")
			return
		}
	case req.Type != "":
		parsed, err := sqltype.ParseLenient(req.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, spec.EngineName(), err.Error())
			return
		}
		d = parsed
	default:
		writeError(w, http.StatusBadRequest, spec.EngineName(), `one of "type" or "descriptor" is required`)
		return
	}

	dialect := spec.Dialect()
	if req.Dialect != "" {
		var ok bool
		if dialect, ok = sqltype.DialectByName(req.Dialect); !ok {
			writeError(w, http.StatusBadRequest, spec.EngineName(), fmt.Sprintf("unknown dialect %q", req.Dialect))
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"type": spec.ColumnTypeToString(d, dialect)})
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	spec := specFrom(r)

	var req probeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, spec.EngineName(), err.Error())
		return
	}
	if strings.TrimSpace(req.DSN) == "" {
		writeError(w, http.StatusBadRequest, spec.EngineName(), `"dsn" is required`)
		return
	}

	res := s.prober.Run(r.Context(), spec, req.DSN)
	writeJSON(w, probeStatus(res), res)
}

// probeStatus is 200 for a healthy connection, 502 when the engine could not
// be reached or refused the login, and 422 for anything else.
func probeStatus(res probe.Result) int {
	switch {
	case res.OK:
		return http.StatusOK
	case len(res.Errors) > 0 && errs.IsConnection(&res.Errors[0]):
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

// --- encoding ---

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, engineName, msg string) {
	writeJSON(w, status, errorsResponse{Errors: []errs.Error{*errs.Generic(engineName, msg)}})
}
