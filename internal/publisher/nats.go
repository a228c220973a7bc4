package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"transit-pathfinder/internal/itinerary"
)

type NATSPublisher struct {
	nc          *nats.Conn
	prefix      string
	logSubjects bool
	metrics     PublisherMetrics
}

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
}

func NewNATSPublisher(url, prefix string, logSubjects bool, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("transit-pathfinder"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info().Msg("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Debug().Msg("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{nc: nc, prefix: prefix, logSubjects: logSubjects, metrics: m}, nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

type ItineraryMessage struct {
	Start     string              `json:"start"`
	Target    string              `json:"target"`
	TotalTime int                 `json:"totalTime"`
	Transfers int                 `json:"transfers"`
	Segments  []itinerary.Segment `json:"segments"`
	Timestamp time.Time           `json:"timestamp"`
}

func NewItineraryMessage(it *itinerary.Itinerary, now time.Time) ItineraryMessage {
	return ItineraryMessage{
		Start:     it.Start,
		Target:    it.Target,
		TotalTime: it.TotalTime,
		Transfers: it.Transfers(),
		Segments:  it.Segments(),
		Timestamp: now,
	}
}

// PublishItinerary sends the itinerary to <prefix>.<start>.<target>.
func (p *NATSPublisher) PublishItinerary(it *itinerary.Itinerary) error {
	subject := Subject(p.prefix, it.Start, it.Target)
	b, err := json.Marshal(NewItineraryMessage(it, time.Now().UTC()))
	if err != nil {
		return err
	}
	if p.logSubjects {
		log.Info().Str("subject", subject).Msg("nats publish")
	}
	start := time.Now()
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		p.metrics.PublishObserve(time.Since(start))
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

func Subject(prefix, start, target string) string {
	return fmt.Sprintf("%s.%s.%s", prefix, subjectToken(start), subjectToken(target))
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
