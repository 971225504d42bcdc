// Package alert notifies operators when a recycling point needs emptying.
package alert

import (
	"context"
	"fmt"
	"time"

	"recycling-api/internal/estimation"
	"recycling-api/internal/mailer"
	"recycling-api/internal/models"

	"github.com/rs/zerolog"
)

// Dispatcher sends a notification for every saved point at or above the full threshold.
//
// Each notification runs in its own goroutine that nobody waits on: the caller never sees the outcome,
// there is no retry and two alerts for the same point may arrive in any order. Messages still in flight
// when the process exits are lost.
type Dispatcher struct {
	mailer mailer.Mailer
	logger zerolog.Logger
	now    func() time.Time
}

// NewDispatcher creates a dispatcher delivering through m.
func NewDispatcher(m mailer.Mailer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		mailer: m,
		logger: logger.With().Str("component", "alert").Logger(),
		now:    time.Now,
	}
}

// Check spawns a notification when the point is full and returns without waiting for it.
// It reports whether a notification was spawned.
func (d *Dispatcher) Check(point models.RecyclingPoint) bool {
	if point.FillLevel < estimation.FullThreshold {
		return false
	}

	d.logger.Warn().
		Int64("point_id", point.ID).
		Str("point", point.Name).
		Int("fill_level", point.FillLevel).
		Msg("recycling point is critical, dispatching alert")

	msg := compose(point, d.now())
	go d.send(point.ID, msg)
	return true
}

func (d *Dispatcher) send(pointID int64, msg mailer.Message) {
	if err := d.mailer.Send(context.Background(), msg); err != nil {
		d.logger.Error().Err(err).Int64("point_id", pointID).Msg("failed to send alert")
		return
	}
	d.logger.Debug().Int64("point_id", pointID).Msg("alert sent")
}

func compose(point models.RecyclingPoint, now time.Time) mailer.Message {
	return mailer.Message{
		Subject: fmt.Sprintf("URGENT: collection needed at %s", point.Name),
		Body: fmt.Sprintf(
			"The recycling point %q requires immediate attention.\n\n"+
				"Current level: %d%%\n"+
				"Projection: %s\n"+
				"Waste type: %s\n\n"+
				"Automated collection management system.\n",
			point.Name,
			point.FillLevel,
			estimation.Estimate(point.FillLevel, point.LastEmptiedAt, now),
			point.WasteType,
		),
	}
}
