package master

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/edgelink/go-modbus/internal/pool"
	"github.com/edgelink/go-modbus/logger"
	"github.com/edgelink/go-modbus/modbus"
)

// Transactor is the unicast exchange engine for one channel.
//
// A Transactor is long-lived (one per channel), safe for concurrent use, and
// owns the retry policy and the exclusive-access discipline for the channel's
// lifetime. The policy fields are read-only once the Transactor is built.
type Transactor struct {
	// mu serializes exchanges. It is held from the request write through the
	// final read of that exchange (including acknowledge re-reads, whose
	// pending reply belongs to this exchange), and released before
	// validation and before the busy/transient backoff sleeps.
	mu sync.Mutex

	channel modbus.Channel
	codec   modbus.Codec
	cfg     *Config
	logger  logger.Logger
	diag    Diagnostics

	metrics   Metrics
	unitStats *xsync.MapOf[byte, *UnitStats]
}

// NewTransactor creates an exchange engine bound to the given channel and
// codec. A nil cfg selects the default policy.
func NewTransactor(channel modbus.Channel, codec modbus.Codec, cfg *Config) (*Transactor, error) {
	if channel == nil {
		return nil, errors.New("master: channel is nil")
	}
	if codec == nil {
		return nil, errors.New("master: codec is nil")
	}

	if cfg == nil {
		var err error
		cfg, err = NewConfig()
		if err != nil {
			return nil, err
		}
	}

	return &Transactor{
		channel:   channel,
		codec:     codec,
		cfg:       cfg,
		logger:    cfg.logger,
		diag:      cfg.diag,
		unitStats: xsync.NewMapOf[byte, *UnitStats](),
	}, nil
}

// Metrics returns the engine's counters.
func (t *Transactor) Metrics() *Metrics { return &t.metrics }

// StatsForUnit returns the per-device counters for unit, creating them on
// first use.
func (t *Transactor) StatsForUnit(unit byte) *UnitStats {
	stats, _ := t.unitStats.LoadOrCompute(unit, func() *UnitStats { return &UnitStats{} })

	return stats
}

// Unicast performs one request/response exchange with the device addressed
// by req and returns its validated data response.
//
// Transient faults (timeout, I/O, malformed frame, response mismatch) are
// resubmitted up to the configured budget of retries additional attempts,
// then the last fault is propagated. An acknowledge exception makes the
// engine wait and re-read without resubmitting; a device-busy exception makes
// it wait and resubmit; neither consumes the budget, and both loop until the
// device yields a definitive answer or ctx is done. Any other exception code
// propagates immediately as a [*modbus.ExceptionError].
//
// ctx is the caller's cancellation/deadline hook; it is consulted before the
// write, before every read, and during every wait.
func (t *Transactor) Unicast(ctx context.Context, req *modbus.Request) (*modbus.DataResponse, error) {
	if req == nil {
		return nil, errors.New("master: request is nil")
	}

	// Encoding is a pure function of the request; a failure here is a
	// protocol/programmer error and is not retried.
	frame, err := t.codec.Encode(req)
	if err != nil {
		return nil, fmt.Errorf("master: encode request: %w", err)
	}

	t.metrics.incRequestCount()
	stats := t.StatsForUnit(req.UnitID())
	stats.Requests.Add(1)

	// failures counts failed full write/read cycles. The budget allows
	// cfg.retries additional cycles after the first: retries+1 total.
	failures := 0

	for {
		resp, err := t.exchange(ctx, req, frame)
		if err == nil {
			err = validateResponse(req, resp)
		}

		if err == nil {
			exc, ok := resp.(*modbus.ExceptionResponse)
			if !ok {
				// The Response union has exactly two variants.
				dataResp := resp.(*modbus.DataResponse)
				t.metrics.incResponseCount()

				return dataResp, nil
			}

			if exc.Code() == modbus.ExceptionSlaveDeviceBusy {
				// The device cannot process now. Wait and resubmit; this
				// path never consumes the retry budget and is bounded only
				// by ctx.
				t.reportWait(req, modbus.ExceptionSlaveDeviceBusy)

				if err := t.sleep(ctx, t.cfg.waitToRetry); err != nil {
					return nil, t.fail(stats, err)
				}

				continue
			}

			// Definitive rejection by the device; never retried.
			return nil, t.fail(stats, exc.Err())
		}

		if !modbus.IsTransient(err) {
			// Cancellation, or an unclassified collaborator failure.
			return nil, t.fail(stats, err)
		}

		failures++
		if failures > t.cfg.retries {
			t.logger.Warn("master: retries exhausted",
				"unit", req.UnitID(),
				"function", req.FunctionCode().String(),
				"attempts", failures,
				"error", err)

			return nil, t.fail(stats, err)
		}

		remaining := t.cfg.retries - failures + 1
		t.metrics.incRetryCount()
		stats.Retries.Add(1)
		t.diag.OnRetry(req, err, remaining)

		t.logger.Debug("master: transient fault, resubmitting",
			"unit", req.UnitID(),
			"function", req.FunctionCode().String(),
			"remaining", remaining,
			"error", err)
	}
}

// exchange performs one write followed by the read-again loop, under the
// channel lock.
//
// Acknowledge exceptions are absorbed here: the device has accepted the
// request and is still processing, so the engine sleeps and reads again
// without resubmitting. The lock stays held across those waits because the
// pending reply belongs to this exchange — another caller's write would
// steal it. Every other outcome (data response, non-acknowledge exception,
// transport fault) is returned for classification outside the lock.
func (t *Transactor) exchange(ctx context.Context, req *modbus.Request, frame []byte) (modbus.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := t.channel.WriteFrame(ctx, frame); err != nil {
		return nil, err
	}

	for {
		raw, err := t.channel.ReadFrame(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := t.codec.Decode(raw, req)
		if err != nil {
			return nil, err
		}

		exc, ok := resp.(*modbus.ExceptionResponse)
		if !ok || exc.Code() != modbus.ExceptionAcknowledge {
			return resp, nil
		}

		t.reportWait(req, modbus.ExceptionAcknowledge)

		if err := t.sleep(ctx, t.cfg.waitToRetry); err != nil {
			return nil, err
		}
	}
}

// reportWait emits the wait side channel: metrics, diagnostics, debug log.
func (t *Transactor) reportWait(req *modbus.Request, code modbus.ExceptionCode) {
	t.metrics.incWaitCount()
	t.diag.OnWait(req, code, t.cfg.waitToRetry)

	t.logger.Debug("master: device deferred request, waiting",
		"unit", req.UnitID(),
		"function", req.FunctionCode().String(),
		"code", code.String(),
		"wait", t.cfg.waitToRetry)
}

// fail records a terminal outcome and returns err unchanged.
func (t *Transactor) fail(stats *UnitStats, err error) error {
	t.metrics.incErrorCount()
	stats.Errors.Add(1)

	return err
}

// sleep pauses for d or until ctx is done, whichever comes first.
// A zero d degenerates to an immediate re-attempt.
func (t *Transactor) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := pool.GetTimer(d)
	defer pool.PutTimer(timer)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
