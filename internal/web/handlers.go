package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/JonMunkholm/pinstore/internal/core"
	"github.com/JonMunkholm/pinstore/internal/metrics"
	"github.com/JonMunkholm/pinstore/internal/web/middleware"
)

// savePINRequest mirrors the submission body. Fields are kept raw so a value
// of the wrong JSON type can be told apart from a missing one.
type savePINRequest struct {
	PIN       json.RawMessage `json:"pin"`
	Timestamp json.RawMessage `json:"ts"`
	UserAgent json.RawMessage `json:"ua"`
}

type savePINResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    float64          `json:"uptime"`
	Storage   core.StorageInfo `json:"storage"`
	Records   *int             `json:"records,omitempty"`
}

// handleSavePIN validates and stores one submission.
func (s *Server) handleSavePIN(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	var req savePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		// Unparseable bodies carry no usable PIN.
		s.metrics.ObserveSubmission(metrics.ResultInvalid)
		writeError(w, r, http.StatusBadRequest, core.ErrPINRequired.Message)
		return
	}

	err := s.service.Submit(r.Context(), core.SubmitInput{
		PIN:        jsonString(req.PIN),
		Timestamp:  derefString(jsonString(req.Timestamp)),
		UserAgent:  derefString(jsonString(req.UserAgent)),
		SourceAddr: clientIP(r),
	})
	if err != nil {
		if core.IsValidationError(err) {
			s.metrics.ObserveSubmission(metrics.ResultInvalid)
		} else {
			s.metrics.ObserveSubmission(metrics.ResultFailed)
		}
		respondError(w, r, err)
		return
	}

	s.metrics.ObserveSubmission(metrics.ResultSaved)
	writeJSON(w, r, http.StatusOK, savePINResponse{Status: "ok", Message: "PIN saved successfully"})
}

// handleGetPINs returns all retained records as a JSON array.
func (s *Server) handleGetPINs(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if records == nil {
		records = []core.Record{}
	}

	s.metrics.StoreRecords.Set(float64(len(records)))
	writeJSON(w, r, http.StatusOK, records)
}

// handleExportPINs streams all retained records as a CSV attachment.
func (s *Server) handleExportPINs(w http.ResponseWriter, r *http.Request) {
	csv, err := s.service.ExportCSV(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.metrics.Exports.Inc()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+s.cfg.Export.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, csv)
}

// handleHealth reports liveness, uptime and how records are stored.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: core.FormatTime(time.Now()),
		Uptime:    time.Since(s.started).Seconds(),
		Storage:   s.service.Storage(),
	}

	records, err := s.service.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	n := len(records)
	resp.Records = &n
	s.metrics.StoreRecords.Set(float64(n))

	writeJSON(w, r, http.StatusOK, resp)
}

// jsonString returns the decoded string, or nil when raw is absent, null or
// not a JSON string.
func jsonString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// clientIP is the request's source address without the port, as resolved by
// TrustedRealIP. Empty when it cannot be parsed.
func clientIP(r *http.Request) string {
	if ip := middleware.ExtractIP(r.RemoteAddr); ip != nil {
		return ip.String()
	}
	return ""
}
