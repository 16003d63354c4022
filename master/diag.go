package master

import (
	"sync"
	"time"

	"github.com/edgelink/go-modbus/modbus"
)

// Diagnostics receives an event for every observable decision point of the
// exchange engine: one per transient-fault retry and one per
// acknowledge/busy wait.
//
// Implementations must not block; the engine calls them inline on the
// exchanging goroutine. Diagnostics is a side channel only — correctness of
// the exchange never depends on it.
type Diagnostics interface {
	// OnRetry is called before each transient-fault resubmission.
	// remaining is the number of attempts still available after this fault.
	OnRetry(req *modbus.Request, fault error, remaining int)

	// OnWait is called before each acknowledge re-read or device-busy
	// resubmission sleep.
	OnWait(req *modbus.Request, code modbus.ExceptionCode, wait time.Duration)
}

// NopDiagnostics returns a Diagnostics that discards all events.
func NopDiagnostics() Diagnostics { return nopDiag{} }

type nopDiag struct{}

func (nopDiag) OnRetry(*modbus.Request, error, int)                         {}
func (nopDiag) OnWait(*modbus.Request, modbus.ExceptionCode, time.Duration) {}

// EventKind discriminates recorded diagnostic events.
type EventKind int

const (
	// EventRetry marks a transient-fault resubmission.
	EventRetry EventKind = iota
	// EventWait marks an acknowledge/busy backoff sleep.
	EventWait
)

// Event is one recorded diagnostic observation.
type Event struct {
	Kind     EventKind
	Time     time.Time
	Unit     byte
	Function modbus.FunctionCode

	// Retry events.
	Fault     error
	Remaining int

	// Wait events.
	Code modbus.ExceptionCode
	Wait time.Duration
}

// EventRecorder is a Diagnostics implementation that captures the event
// stream in memory, for tests and for applications that forward events to
// their own monitoring.
type EventRecorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Diagnostics = (*EventRecorder)(nil)

// NewEventRecorder creates an empty recorder.
func NewEventRecorder() *EventRecorder { return &EventRecorder{} }

func (r *EventRecorder) OnRetry(req *modbus.Request, fault error, remaining int) {
	r.append(Event{
		Kind:      EventRetry,
		Time:      time.Now(),
		Unit:      req.UnitID(),
		Function:  req.FunctionCode(),
		Fault:     fault,
		Remaining: remaining,
	})
}

func (r *EventRecorder) OnWait(req *modbus.Request, code modbus.ExceptionCode, wait time.Duration) {
	r.append(Event{
		Kind:     EventWait,
		Time:     time.Now(),
		Unit:     req.UnitID(),
		Function: req.FunctionCode(),
		Code:     code,
		Wait:     wait,
	})
}

// Events returns a snapshot of all recorded events in order.
func (r *EventRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)

	return out
}

func (r *EventRecorder) append(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, ev)
}
