package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ku524/clickhouse-datasource/pkg/sqlrewrite"
)

type paginateRequest struct {
	SQL     string `json:"sql"`
	Limit   int    `json:"limit,omitempty"`
	OrderBy string `json:"order_by,omitempty"`
	Order   string `json:"order,omitempty"`
}

type contextRequest struct {
	SQL        string          `json:"sql"`
	TimeColumn string          `json:"time_column,omitempty"`
	TimeExpr   string          `json:"time_expr"`
	Direction  string          `json:"direction,omitempty"`
	Limit      int             `json:"limit,omitempty"`
	Filters    []contextFilter `json:"filters,omitempty"`
}

type contextFilter struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

type inspectRequest struct {
	SQL string `json:"sql"`
}

type rewriteResponse struct {
	SQL string `json:"sql"`
}

type inspectResponse struct {
	// Clauses maps each present top-level clause keyword to its byte offset.
	Clauses         map[string]int `json:"clauses"`
	HasLimit        bool           `json:"has_limit"`
	HasOrderBy      bool           `json:"has_order_by"`
	ScalarAggregate bool           `json:"scalar_aggregate"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePaginate(w http.ResponseWriter, r *http.Request) {
	var req paginateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.SQL == "" {
		s.writeError(w, http.StatusBadRequest, "sql is required")
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	sql := sqlrewrite.InjectLimit(req.SQL, limit)
	if req.OrderBy != "" {
		order := sqlrewrite.SortAsc
		if strings.EqualFold(req.Order, string(sqlrewrite.SortDesc)) {
			order = sqlrewrite.SortDesc
		}
		sql = sqlrewrite.InjectOrderBy(sql, req.OrderBy, order)
	}

	s.writeJSON(w, http.StatusOK, rewriteResponse{SQL: sql})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.SQL == "" {
		s.writeError(w, http.StatusBadRequest, "sql is required")
		return
	}
	if req.TimeExpr == "" {
		s.writeError(w, http.StatusBadRequest, "time_expr is required")
		return
	}

	dir := sqlrewrite.Direction(req.Direction)
	if dir == "" {
		dir = sqlrewrite.DirectionBackward
	}
	if dir != sqlrewrite.DirectionForward && dir != sqlrewrite.DirectionBackward {
		s.writeError(w, http.StatusBadRequest, "direction must be forward or backward")
		return
	}

	opts := sqlrewrite.ContextOptions{
		TimeColumn: req.TimeColumn,
		TimeExpr:   req.TimeExpr,
		Direction:  dir,
		Limit:      req.Limit,
	}
	if opts.TimeColumn == "" {
		opts.TimeColumn = s.timeColumn
	}
	if opts.Limit <= 0 {
		opts.Limit = s.defaultLimit
	}
	for _, f := range req.Filters {
		opts.Filters = append(opts.Filters, sqlrewrite.ContextFilter{Column: f.Column, Value: f.Value})
	}

	s.writeJSON(w, http.StatusOK, rewriteResponse{SQL: sqlrewrite.BuildContextQuery(req.SQL, opts)})
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req inspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.SQL == "" {
		s.writeError(w, http.StatusBadRequest, "sql is required")
		return
	}

	resp := inspectResponse{
		Clauses:         make(map[string]int),
		HasLimit:        sqlrewrite.HasLimit(req.SQL),
		HasOrderBy:      sqlrewrite.HasOrderBy(req.SQL),
		ScalarAggregate: sqlrewrite.IsScalarAggregate(req.SQL),
	}
	for _, keyword := range sqlrewrite.Clauses() {
		if pos := sqlrewrite.FindClause(req.SQL, keyword); pos >= 0 {
			resp.Clauses[keyword] = pos
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
