package homeassistant

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"growdash/internal/sensors"
)

// Poller periodically pulls sensor states from Home Assistant and persists
// the numeric ones as readings.
type Poller struct {
	client Client
	store  *sensors.Store
}

// NewPoller creates a new Poller.
func NewPoller(client Client, store *sensors.Store) *Poller {
	return &Poller{client: client, store: store}
}

// Run polls at the given interval until the context is canceled. One poll
// is performed immediately on start.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	if err := p.Poll(ctx); err != nil {
		log.Printf("Sensor poll failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Poll(ctx); err != nil {
				log.Printf("Sensor poll failed: %v", err)
			}
		}
	}
}

// Poll fetches all states once and records every numeric sensor entity.
func (p *Poller) Poll(ctx context.Context) error {
	states, err := p.client.FetchStates(ctx)
	if err != nil {
		return err
	}

	recorded := 0
	for _, s := range states {
		if !strings.HasPrefix(s.EntityID, "sensor.") {
			continue
		}
		value, err := strconv.ParseFloat(s.State, 64)
		if err != nil {
			// Non-numeric states (unavailable, unknown, text sensors)
			// are skipped.
			continue
		}
		metric := s.DeviceClass()
		if metric == "" {
			metric = strings.TrimPrefix(s.EntityID, "sensor.")
		}
		reading := sensors.Reading{
			EntityID:   s.EntityID,
			Metric:     metric,
			Value:      value,
			Unit:       s.Unit(),
			RecordedAt: s.LastUpdated,
		}
		if err := p.store.Record(ctx, reading); err != nil {
			log.Printf("Warning: failed to record %s: %v", s.EntityID, err)
			continue
		}
		recorded++
	}

	log.Printf("Recorded %d sensor readings", recorded)
	return nil
}
