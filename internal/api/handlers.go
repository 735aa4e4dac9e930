package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/alexiusacademia/beamcheck/internal/beam"
	"github.com/alexiusacademia/beamcheck/internal/diagram"
	"github.com/alexiusacademia/beamcheck/internal/errors"
	"github.com/alexiusacademia/beamcheck/internal/report"
	"github.com/alexiusacademia/beamcheck/internal/version"
)

// CalcResponse is the calc result with its LaTeX report.
type CalcResponse struct {
	*beam.Result
	LaTeX string `json:"latex"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]Calculator{"calculators": Catalog})
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	res, ok := s.check(w, r)
	if !ok {
		return
	}
	tex, err := report.LaTeX(res, s.reportMeta())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CalcResponse{Result: res, LaTeX: tex})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.check(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.PDF(&buf, res, s.reportMeta()); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="beam-check.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	res, ok := s.check(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := diagram.WriteSection(&buf, diagram.FromResult(res), "png"); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// check decodes, validates and runs one request. On failure it writes the
// error envelope and returns false.
func (s *Server) check(w http.ResponseWriter, r *http.Request) (*beam.Result, bool) {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	var in beam.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrors(w, http.StatusBadRequest, map[string]string{"non_field_errors": "invalid JSON payload: " + err.Error()})
		return nil, false
	}
	if err := in.Validate(); err != nil {
		writeFailure(w, err)
		return nil, false
	}

	res, err := beam.Check(in)
	if err != nil {
		if field, ok := errorField(err); ok {
			s.logger.Info("check rejected",
				zap.String("op", "api.check"),
				zap.String("request_id", RequestID(r.Context())),
				zap.String("subject", Subject(r.Context())),
				zap.String("code", string(errors.GetCode(err))),
				zap.Error(err),
			)
			writeErrors(w, http.StatusBadRequest, map[string]string{field: errors.UserMessage(err)})
			return nil, false
		}
		s.serverError(w, r, err)
		return nil, false
	}
	return res, true
}

func (s *Server) reportMeta() report.Meta {
	meta := s.meta
	meta.Date = time.Now().Format("2006-01-02")
	return meta
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		zap.String("op", "api"),
		zap.String("request_id", RequestID(r.Context())),
		zap.String("subject", Subject(r.Context())),
		zap.Error(err),
	)
	writeErrors(w, http.StatusInternalServerError, map[string]string{"server": err.Error()})
}
