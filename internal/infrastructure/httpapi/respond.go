package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yasar2385/family-address-book/internal/application/handlers"
	"github.com/yasar2385/family-address-book/internal/domain/ports"
	"github.com/yasar2385/family-address-book/internal/domain/services"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var errNoCoordinates = errors.New("no coordinates found in url")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// fail maps a handler error onto a status code.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	default:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

// decode reads a JSON body into v. Unknown fields are rejected.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", services.ErrValidation, err)
	}
	return nil
}

// criteria reads filter criteria from the query string.
func criteria(r *http.Request) services.Criteria {
	q := r.URL.Query()
	term := q.Get("q")
	if term == "" {
		term = q.Get("search")
	}
	return services.Criteria{
		SearchTerm:  term,
		State:       q.Get("state"),
		District:    q.Get("district"),
		HasChildren: q.Get("hasChildren"),
	}
}

// expanded reads the expand parameter: absent or "all" expands every node,
// otherwise it is a comma-separated list of expanded member ids.
func expanded(r *http.Request) *handlers.ExpandedSet {
	v := r.URL.Query().Get("expand")
	if v == "" || v == "all" {
		return nil
	}
	return handlers.NewExpandedSet(strings.Split(v, ",")...)
}
