package worker

import (
	"github.com/domino14/rummy/solver"
)

// SolveRequest asks for the best play in a position, given in position
// notation.
type SolveRequest struct {
	ID       string `json:"id,omitempty"`
	Position string `json:"position"`
	// TimeoutMs, if positive and below the worker's own limit, caps the
	// solve time.
	TimeoutMs int `json:"timeout_ms,omitempty"`
}

// SolveResponse carries either a solution or an error message.
type SolveResponse struct {
	ID       string           `json:"id,omitempty"`
	Position string           `json:"position"`
	Solution *solver.Solution `json:"solution,omitempty"`
	Error    string           `json:"error,omitempty"`
}
