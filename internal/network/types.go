package network

// StationID is the dense index a station name is interned to on first encounter.
type StationID int

// Connection is one directed, line-tagged edge leaving a station.
type Connection struct {
	To         StationID
	TravelTime int
	Line       string
}

// Route is a single line of a network description: the line name and the
// stations it serves, with Times[i] being the travel time between
// Stations[i] and Stations[i+1].
type Route struct {
	Line     string
	Stations []string
	Times    []int
}
