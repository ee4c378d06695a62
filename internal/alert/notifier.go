// Package alert delivers engine alerts to the terminal and to remote
// notification channels.
package alert

import (
	"context"
	"time"

	"github.com/akyairhashvil/kamreen/internal/models"
)

// Event is a fired alert as seen by remote notifiers.
type Event struct {
	Kind    models.AlertKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	FiredAt time.Time        `json:"firedAt"`
}

// Notifier delivers alert events to external systems.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
