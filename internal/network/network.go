package network

import (
	"golang.org/x/exp/slices"
)

// Network is a bidirectional weighted multigraph keyed by station name.
// It is built once by the loader and only read afterwards, so a single
// Network may be shared by concurrent queries.
type Network struct {
	ids         map[string]StationID
	names       []string
	connections [][]Connection
	edges       int
}

func New() *Network {
	return &Network{ids: make(map[string]StationID)}
}

// AddRoute inserts a forward and a mirrored connection for every
// consecutive station pair of the route. Parallel connections between the
// same pair are kept side by side, never merged.
func (n *Network) AddRoute(r Route) {
	for i := 0; i < len(r.Times) && i+1 < len(r.Stations); i++ {
		n.connect(r.Stations[i], r.Stations[i+1], r.Times[i], r.Line)
	}
}

func (n *Network) connect(from, to string, travelTime int, line string) {
	a := n.intern(from)
	b := n.intern(to)
	n.connections[a] = append(n.connections[a], Connection{To: b, TravelTime: travelTime, Line: line})
	n.connections[b] = append(n.connections[b], Connection{To: a, TravelTime: travelTime, Line: line})
	n.edges += 2
}

func (n *Network) intern(name string) StationID {
	if id, ok := n.ids[name]; ok {
		return id
	}
	id := StationID(len(n.names))
	n.ids[name] = id
	n.names = append(n.names, name)
	n.connections = append(n.connections, nil)
	return id
}

// Lookup returns the id of the named station.
func (n *Network) Lookup(name string) (StationID, bool) {
	id, ok := n.ids[name]
	return id, ok
}

func (n *Network) Has(name string) bool {
	_, ok := n.ids[name]
	return ok
}

func (n *Network) Name(id StationID) string {
	return n.names[id]
}

// Connections returns the outgoing connections of id in insertion order.
// The slice is owned by the network and must not be modified.
func (n *Network) Connections(id StationID) []Connection {
	return n.connections[id]
}

// Len is the number of stations.
func (n *Network) Len() int {
	return len(n.names)
}

// ConnectionCount is the number of directed connections, mirrors included.
func (n *Network) ConnectionCount() int {
	return n.edges
}

// Stations returns all station names in lexical order.
func (n *Network) Stations() []string {
	names := slices.Clone(n.names)
	slices.Sort(names)
	return names
}
