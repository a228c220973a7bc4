// Package itinerary turns a path finder result into a readable journey,
// marking every change of line as a transfer.
package itinerary

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"transit-pathfinder/internal/pathfinder"
)

// Hop is travel between two adjacent stations on one line.
type Hop struct {
	From       string `json:"from" yaml:"from"`
	To         string `json:"to" yaml:"to"`
	Line       string `json:"line" yaml:"line"`
	TravelTime int    `json:"travelTime" yaml:"travelTime"`
	Transfer   bool   `json:"transfer" yaml:"transfer"`
}

// Segment is a run of consecutive hops on the same line.
type Segment struct {
	Line       string   `json:"line" yaml:"line"`
	Stations   []string `json:"stations" yaml:"stations"`
	TravelTime int      `json:"travelTime" yaml:"travelTime"`
}

type Itinerary struct {
	Start     string   `json:"start" yaml:"start"`
	Target    string   `json:"target" yaml:"target"`
	Stations  []string `json:"stations" yaml:"stations"`
	Hops      []Hop    `json:"hops" yaml:"hops"`
	TotalTime int      `json:"totalTime" yaml:"totalTime"`
}

type step struct {
	station string
	line    string
	cost    int
}

// Build reconstructs the path from start to target by following Previous
// links back from target.
func Build(start, target string, chain map[string]pathfinder.PathInfo, cost int) (*Itinerary, error) {
	var steps []step
	for station := target; station != start; {
		if len(steps) > len(chain) {
			return nil, fmt.Errorf("path chain from %q does not lead back to %q", target, start)
		}
		pi, ok := chain[station]
		if !ok {
			return nil, fmt.Errorf("path chain broken at %q", station)
		}
		steps = append(steps, step{station: station, line: pi.Line, cost: pi.Cost})
		station = pi.Previous
	}
	steps = append(steps, step{station: start})
	slices.Reverse(steps)

	it := &Itinerary{
		Start:     start,
		Target:    target,
		Stations:  make([]string, 0, len(steps)),
		Hops:      make([]Hop, 0, len(steps)-1),
		TotalTime: cost,
	}

	// The first hop sets the current line and is never a transfer.
	var current string
	if len(steps) > 1 {
		current = steps[1].line
	}

	for i, s := range steps {
		it.Stations = append(it.Stations, s.station)
		if i == 0 {
			continue
		}
		prev := steps[i-1]
		hop := Hop{From: prev.station, To: s.station, Line: s.line, TravelTime: s.cost - prev.cost}
		if s.line != current {
			hop.Transfer = true
			current = s.line
		}
		it.Hops = append(it.Hops, hop)
	}

	return it, nil
}

// FromResult builds the itinerary of a successful query.
func FromResult(res *pathfinder.Result) (*Itinerary, error) {
	return Build(res.Start, res.Target, res.Chain, res.Cost)
}

// Segments groups consecutive hops that share a line.
func (it *Itinerary) Segments() []Segment {
	var segments []Segment
	for i, hop := range it.Hops {
		if i == 0 || hop.Transfer {
			segments = append(segments, Segment{Line: hop.Line, Stations: []string{hop.From}})
		}
		seg := &segments[len(segments)-1]
		seg.Stations = append(seg.Stations, hop.To)
		seg.TravelTime += hop.TravelTime
	}
	return segments
}

// Transfers is the number of line changes along the way.
func (it *Itinerary) Transfers() int {
	n := 0
	for _, hop := range it.Hops {
		if hop.Transfer {
			n++
		}
	}
	return n
}

// Text renders the itinerary for a terminal:
//
//	Shortest path from "A" to "C":
//	   A --[L1]--> B --[transfer to L2]--> C
//	Total travel time: 2
func (it *Itinerary) Text() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Shortest path from %q to %q:\n", it.Start, it.Target)
	sb.WriteString("   ")
	sb.WriteString(it.Start)
	for _, hop := range it.Hops {
		if hop.Transfer {
			fmt.Fprintf(&sb, " --[transfer to %s]--> ", hop.Line)
		} else {
			fmt.Fprintf(&sb, " --[%s]--> ", hop.Line)
		}
		sb.WriteString(hop.To)
	}
	fmt.Fprintf(&sb, "\nTotal travel time: %d\n", it.TotalTime)

	return sb.String()
}
