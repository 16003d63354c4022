package master

import (
	"sync/atomic"
)

// Metrics contains atomic counters for a Transactor.
// Counters can be used as the value of a prometheus CounterFunc or GaugeFunc.
type Metrics struct {
	// RequestCount indicates the number of unicast exchanges started.
	RequestCount atomic.Uint64
	// ResponseCount indicates the number of exchanges completed with a
	// validated data response.
	ResponseCount atomic.Uint64
	// RetryCount indicates the total number of transient-fault resubmissions.
	RetryCount atomic.Uint64
	// WaitCount indicates the total number of acknowledge/busy backoff waits.
	WaitCount atomic.Uint64
	// ErrorCount indicates the number of exchanges that ended in a terminal
	// fault (exhausted budget, terminal exception, cancellation).
	ErrorCount atomic.Uint64
}

func (m *Metrics) incRequestCount()  { m.RequestCount.Add(1) }
func (m *Metrics) incResponseCount() { m.ResponseCount.Add(1) }
func (m *Metrics) incRetryCount()    { m.RetryCount.Add(1) }
func (m *Metrics) incWaitCount()     { m.WaitCount.Add(1) }
func (m *Metrics) incErrorCount()    { m.ErrorCount.Add(1) }

// UnitStats is the per-device breakdown of exchange outcomes.
type UnitStats struct {
	// Requests indicates the number of exchanges addressed to the unit.
	Requests atomic.Uint64
	// Retries indicates the number of transient-fault resubmissions for the unit.
	Retries atomic.Uint64
	// Errors indicates the number of terminal faults for the unit.
	Errors atomic.Uint64
}
