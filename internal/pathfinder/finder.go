// Package pathfinder finds minimum travel time routes through a transit
// network.
package pathfinder

import (
	"container/heap"
	"context"

	"github.com/yourbasic/bit"

	"transit-pathfinder/internal/network"
)

// PathInfo records how the best known cost of a station was reached.
type PathInfo struct {
	Previous string `json:"previous" yaml:"previous"`
	Line     string `json:"line" yaml:"line"`
	Cost     int    `json:"cost" yaml:"cost"`
}

// Result is a successful query. Chain holds a PathInfo for every station
// reached during the search; following Previous from Target leads to Start.
type Result struct {
	Start   string
	Target  string
	Cost    int
	Chain   map[string]PathInfo
	Settled int
}

// Find computes the minimum travel time path from start to target.
//
// Unknown endpoints yield a *StationNotFoundError and disconnected endpoints
// a *NoPathError. The network is only read, so concurrent calls sharing one
// network are safe.
func Find(ctx context.Context, net *network.Network, start, target string) (*Result, error) {
	startID, startOK := net.Lookup(start)
	targetID, targetOK := net.Lookup(target)

	var missing []string
	if !startOK {
		missing = append(missing, start)
	}
	if !targetOK && target != start {
		missing = append(missing, target)
	}
	if len(missing) > 0 {
		return nil, &StationNotFoundError{Names: missing}
	}

	// Stations get an entry on first encounter; no entry means unreached.
	best := map[network.StationID]int{startID: 0}
	info := make(map[network.StationID]PathInfo)
	settled := new(bit.Set)

	q := &queue{}
	heap.Push(q, entry{cost: 0, station: startID, name: start})

	for q.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cur := heap.Pop(q).(entry)
		if settled.Contains(int(cur.station)) {
			continue
		}
		settled.Add(int(cur.station))

		if cur.station == targetID {
			break
		}

		for _, c := range net.Connections(cur.station) {
			cost := cur.cost + c.TravelTime
			if known, ok := best[c.To]; ok && cost >= known {
				continue
			}
			best[c.To] = cost
			info[c.To] = PathInfo{Previous: cur.name, Line: c.Line, Cost: cost}
			heap.Push(q, entry{cost: cost, station: c.To, name: net.Name(c.To)})
		}
	}

	cost, ok := best[targetID]
	if !ok {
		return nil, &NoPathError{Start: start, Target: target}
	}

	chain := make(map[string]PathInfo, len(info))
	for id, pi := range info {
		chain[net.Name(id)] = pi
	}

	return &Result{
		Start:   start,
		Target:  target,
		Cost:    cost,
		Chain:   chain,
		Settled: settled.Size(),
	}, nil
}
