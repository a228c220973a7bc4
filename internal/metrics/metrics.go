package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for Queries.
const (
	OutcomeFound           = "found"
	OutcomeStationNotFound = "station_not_found"
	OutcomeNoPath          = "no_path"
	OutcomeError           = "error"
)

type Collector struct {
	reg *prometheus.Registry

	NetworkStations    prometheus.Gauge
	NetworkConnections prometheus.Gauge
	LoadDuration       prometheus.Gauge // seconds

	Queries         *prometheus.CounterVec // outcome label: found|station_not_found|no_path|error
	SearchDuration  prometheus.Histogram
	SettledStations prometheus.Histogram
	Transfers       prometheus.Histogram

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	PublishDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		NetworkStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pathfinder_network_stations",
			Help: "Number of stations in the loaded network.",
		}),
		NetworkConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pathfinder_network_connections",
			Help: "Number of directed connections in the loaded network.",
		}),
		LoadDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pathfinder_network_load_duration_seconds",
			Help: "Time spent loading the network.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathfinder_queries_total",
			Help: "Queries answered, by outcome.",
		}, []string{"outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathfinder_search_duration_seconds",
			Help:    "Duration of shortest path searches.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		}),
		SettledStations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathfinder_settled_stations",
			Help:    "Stations finalized before a search stopped.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
		Transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathfinder_itinerary_transfers",
			Help:    "Line changes per itinerary.",
			Buckets: prometheus.LinearBuckets(0, 1, 8),
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pathfinder_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pathfinder_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathfinder_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
	}

	reg.MustRegister(
		c.NetworkStations, c.NetworkConnections, c.LoadDuration,
		c.Queries, c.SearchDuration, c.SettledStations, c.Transfers,
		c.NATSPublished, c.NATSPublishErrs, c.PublishDuration,
	)

	return c
}

// ObserveLoad records the size of a freshly loaded network.
func (c *Collector) ObserveLoad(stations, connections int, d time.Duration) {
	if c == nil {
		return
	}
	c.NetworkStations.Set(float64(stations))
	c.NetworkConnections.Set(float64(connections))
	c.LoadDuration.Set(d.Seconds())
}

// ObserveQuery counts one answered query. settled and transfers are only
// recorded for found itineraries.
func (c *Collector) ObserveQuery(outcome string, d time.Duration, settled, transfers int) {
	if c == nil {
		return
	}
	c.Queries.WithLabelValues(outcome).Inc()
	c.SearchDuration.Observe(d.Seconds())
	if outcome == OutcomeFound {
		c.SettledStations.Observe(float64(settled))
		c.Transfers.Observe(float64(transfers))
	}
}

// WriteTextfile writes all metrics in the text exposition format, for
// node_exporter's textfile collector. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.reg)
}
