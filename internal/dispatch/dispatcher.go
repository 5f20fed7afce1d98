package dispatch

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/buzzdavidson/ozwcommander/internal/driver"
	"github.com/buzzdavidson/ozwcommander/internal/logging"
)

// Stopped is the message Wait returns when no more events will arrive.
type Stopped struct {
	Err error
}

// Dispatcher converts driver notifications to events and feeds the render
// loop.
type Dispatcher struct {
	queue *Queue
}

// New creates a Dispatcher posting to q.
func New(q *Queue) *Dispatcher {
	return &Dispatcher{queue: q}
}

// Queue returns the underlying queue.
func (d *Dispatcher) Queue() *Queue {
	return d.queue
}

// Notify posts the event for one driver notification. It is called on driver
// goroutines and never blocks.
func (d *Dispatcher) Notify(n driver.Notification) {
	e, ok := FromNotification(n)
	if !ok {
		logging.Warn("Dropping unknown driver notification", zap.Int("kind", int(n.Kind)))
		return
	}
	d.Post(e)
}

// Post queues an event from any goroutine.
func (d *Dispatcher) Post(e Event) bool {
	if !d.queue.Post(e) {
		logging.Debug("Dropping event after shutdown", zap.String("event", eventName(e)))
		return false
	}
	return true
}

// Wait returns a command that delivers the next event as a message. The
// render loop issues it again after handling each event.
func (d *Dispatcher) Wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		e, err := d.queue.Next(ctx)
		if err != nil {
			return Stopped{Err: err}
		}
		return e
	}
}

// FromNotification maps a driver notification to its event.
func FromNotification(n driver.Notification) (Event, bool) {
	switch n.Kind {
	case driver.KindDriverReady:
		return DriverReady{HomeID: n.HomeID, NodeCount: n.NodeCount}, true
	case driver.KindSystemReady:
		return SystemReady{}, true
	case driver.KindNodeAdded:
		return NodeAdded{NodeID: n.NodeID}, true
	case driver.KindNodeReady:
		return NodeReady{NodeID: n.NodeID}, true
	case driver.KindNodeRemoved:
		return NodeRemoved{NodeID: n.NodeID}, true
	case driver.KindValueChanged:
		return ValueChanged{NodeID: n.NodeID, Payload: n.Payload}, true
	case driver.KindDriverFailed:
		return DriverFailed{Err: n.Err}, true
	default:
		return nil, false
	}
}

func eventName(e Event) string {
	switch e.(type) {
	case DriverReady:
		return "driver_ready"
	case SystemReady:
		return "system_ready"
	case NodeAdded:
		return "node_added"
	case NodeReady:
		return "node_ready"
	case NodeRemoved:
		return "node_removed"
	case ValueChanged:
		return "value_changed"
	case DriverFailed:
		return "driver_failed"
	case AlertExpired:
		return "alert_expired"
	case InitCheck:
		return "init_check"
	default:
		return "unknown"
	}
}
