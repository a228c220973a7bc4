package pathfinder

import (
	"fmt"
	"strings"
)

// StationNotFoundError reports query endpoints missing from the network.
type StationNotFoundError struct {
	Names []string
}

func (e *StationNotFoundError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	if len(quoted) == 1 {
		return fmt.Sprintf("station %s not found in network", quoted[0])
	}
	return fmt.Sprintf("stations %s not found in network", strings.Join(quoted, " and "))
}

// NoPathError reports two known stations that are not connected.
type NoPathError struct {
	Start  string
	Target string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path from %q to %q", e.Start, e.Target)
}
