package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kitawerk/dienstplan/pkg/core/engine"
	"github.com/kitawerk/dienstplan/pkg/snapshot"
)

type snapshotReport struct {
	Valid     bool     `json:"valid"`
	Week      string   `json:"week,omitempty"`
	Employees int      `json:"employees,omitempty"`
	Groups    int      `json:"groups,omitempty"`
	Problems  []string `json:"problems,omitempty"`
}

// ValidateSnapshot checks a snapshot without generating anything. The request
// always succeeds; the verdict and the full problem list are in the data.
func (h *Handler) ValidateSnapshot(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	snap, err := snapshot.Parse(body)
	if err != nil {
		h.successResponse(w, r, "Datenstand ist ungültig", snapshotReport{
			Valid:    false,
			Problems: snapshotProblems(err),
		})
		return
	}

	h.successResponse(w, r, "Datenstand ist gültig", snapshotReport{
		Valid:     true,
		Week:      snap.Week,
		Employees: len(snap.Employees),
		Groups:    len(snap.Groups),
	})
}

// snapshotProblems flattens a parse failure into one line per problem
func snapshotProblems(err error) []string {
	var cfgErr *engine.ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Problems
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		problems := make([]string, 0, len(vErrs))
		for _, fe := range vErrs {
			problems = append(problems, fe.Error())
		}
		return problems
	}

	return []string{err.Error()}
}
