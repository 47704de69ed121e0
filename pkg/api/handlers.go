package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/buildinfo"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/pipeline"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/report"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/roster"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/seating"
)

// SeatingRequest is the body of POST /v1/seating.
//
// Roster uses the JSON roster layout ({"sections": [...]}). Format picks the
// response: "json" (the default) returns a [SeatingResponse]; any other
// format returns the rendered artifact. Logo is base64 in JSON.
//
// Rows and Cols shadow the embedded options so that an explicit 0 is told
// apart from an omitted field, which takes the default.
type SeatingRequest struct {
	Roster   json.RawMessage `json:"roster"`
	Format   string          `json:"format,omitempty"`
	LogoData []byte          `json:"logo,omitempty"`
	Rows     *int            `json:"rows,omitempty"`
	Cols     *int            `json:"cols,omitempty"`
	pipeline.Options
}

// SeatingResponse is the JSON result of one allocation.
type SeatingResponse struct {
	ID          string             `json:"id"`
	Report      report.Document    `json:"report"`
	Placed      int                `json:"placed"`
	Capacity    int                `json:"capacity"`
	Underfilled bool               `json:"underfilled"`
	Leftover    map[string]int     `json:"leftover"`
	Stats       seating.FillStats  `json:"stats"`
	Waiting     []string           `json:"waiting,omitempty"`
	Cached      pipeline.CacheInfo `json:"cached"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleSeating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req SeatingRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(req.Roster) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request has no roster"))
		return
	}

	format := req.Format
	if format == "" {
		format = report.FormatJSON
	}
	if err := report.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	opts := req.Options
	if req.Rows != nil || req.Cols != nil {
		rows, cols := pipeline.DefaultRows, pipeline.DefaultCols
		if req.Rows != nil {
			rows = *req.Rows
		}
		if req.Cols != nil {
			cols = *req.Cols
		}
		if err := errors.ValidateDimensions(rows, cols); err != nil {
			s.writeError(w, err)
			return
		}
		opts.Rows, opts.Cols = rows, cols
	}
	opts.Formats = []string{format}
	opts.Logo = req.LogoData
	opts.Logger = s.logger

	ros, rosterHit, err := s.runner.LoadRosterWithCacheInfo(ctx, "request", req.Roster, roster.FormatJSON, opts.Refresh)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := seating.NewSession(ros, s.logger)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Execute(ctx, sess, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res.CacheInfo.RosterHit = rosterHit

	if format == report.FormatJSON {
		s.writeJSON(w, http.StatusOK, newSeatingResponse(res))
		return
	}

	w.Header().Set("Content-Type", report.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Report.Filename(format)+`"`)
	w.Header().Set("X-Seating-Id", res.Allocation.ID)
	w.Header().Set("X-Seats-Placed", strconv.Itoa(res.Stats.Placed))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifacts[format]); err != nil {
		s.logger.Warn("write artifact", "error", err)
	}
}

func newSeatingResponse(res *pipeline.Result) SeatingResponse {
	alloc := res.Allocation
	out := SeatingResponse{
		ID:          alloc.ID,
		Report:      report.NewDocument(res.Report),
		Placed:      alloc.Stats.Placed,
		Capacity:    alloc.Plan.Capacity(),
		Underfilled: alloc.Underfilled(),
		Leftover:    alloc.Leftover,
		Stats:       alloc.Stats,
		Cached:      res.CacheInfo,
	}
	if alloc.Rotation != nil {
		out.Waiting = alloc.Rotation.Waiting()
	}
	return out
}

// writeError maps coded errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrCodeUnsupported):
		status = http.StatusNotImplemented
	case errors.IsClient(err):
		status = http.StatusBadRequest
	}
	if status >= 500 {
		s.logger.Error("seating request failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}
