package itinerary

import (
	"errors"
	"fmt"
	"strings"

	"transit-pathfinder/internal/pathfinder"
)

const (
	StatusFound           = "found"
	StatusStationNotFound = "station_not_found"
	StatusNoPath          = "no_path"
)

// Outcome is a query that ended without an itinerary but was still
// answered: unknown stations or no connection between them.
type Outcome struct {
	Start   string   `json:"start" yaml:"start"`
	Target  string   `json:"target" yaml:"target"`
	Status  string   `json:"status" yaml:"status"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	Message string   `json:"message" yaml:"message"`
}

// OutcomeFor maps the recoverable path finder errors to an Outcome. Any
// other error is not an outcome and yields false.
func OutcomeFor(start, target string, err error) (*Outcome, bool) {
	var notFound *pathfinder.StationNotFoundError
	if errors.As(err, &notFound) {
		quoted := make([]string, len(notFound.Names))
		for i, n := range notFound.Names {
			quoted[i] = fmt.Sprintf("%q", n)
		}
		msg := fmt.Sprintf("Station %s not found in network.", quoted[0])
		if len(quoted) > 1 {
			msg = fmt.Sprintf("Stations %s not found in network.", strings.Join(quoted, " and "))
		}
		return &Outcome{
			Start:   start,
			Target:  target,
			Status:  StatusStationNotFound,
			Missing: notFound.Names,
			Message: msg,
		}, true
	}

	var noPath *pathfinder.NoPathError
	if errors.As(err, &noPath) {
		return &Outcome{
			Start:   start,
			Target:  target,
			Status:  StatusNoPath,
			Message: fmt.Sprintf("No path from %q to %q found.", noPath.Start, noPath.Target),
		}, true
	}

	return nil, false
}
