package master

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/edgelink/go-modbus/modbus"
)

// testUnit and testFunc address the fake device used throughout the engine tests.
const (
	testUnit byte = 0x11
	testFunc      = modbus.FuncReadHoldingRegisters
)

func newTestRequest() *modbus.Request {
	return modbus.NewRequest(testUnit, testFunc, []byte{0x00, 0x6B, 0x00, 0x03})
}

func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()

	defaults := []Option{
		WithWaitToRetry(time.Millisecond),
	}

	cfg, err := NewConfig(append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("newTestConfig: %v", err)
	}

	return cfg
}

// step is one scripted read outcome on the fake bus: either a read fault or a
// response to decode.
type step struct {
	readErr error
	resp    modbus.Response
}

func okStep() step {
	return step{resp: modbus.NewDataResponse(testUnit, testFunc, []byte{0x06, 0x02, 0x2B, 0x00, 0x00, 0x00, 0x64})}
}

func ackStep() step {
	return step{resp: modbus.NewExceptionResponse(testUnit, testFunc, modbus.ExceptionAcknowledge)}
}

func busyStep() step {
	return step{resp: modbus.NewExceptionResponse(testUnit, testFunc, modbus.ExceptionSlaveDeviceBusy)}
}

func faultStep(sentinel error) step {
	return step{readErr: fmt.Errorf("%w: scripted", sentinel)}
}

// fakeBus implements both modbus.Channel and modbus.Codec against a script of
// read outcomes. ReadFrame hands out the step index as a one-byte frame and
// Decode resolves it back to the scripted response, so the engine exercises
// its real write → read → decode path.
type fakeBus struct {
	mu        sync.Mutex
	steps     []step
	writes    int
	reads     int
	encodeErr error
	writeErr  error
}

var (
	_ modbus.Channel = (*fakeBus)(nil)
	_ modbus.Codec   = (*fakeBus)(nil)
)

func newFakeBus(steps ...step) *fakeBus {
	return &fakeBus{steps: steps}
}

func (f *fakeBus) Encode(req *modbus.Request) ([]byte, error) {
	if f.encodeErr != nil {
		return nil, f.encodeErr
	}

	return []byte{req.UnitID(), byte(req.FunctionCode())}, nil
}

func (f *fakeBus) WriteFrame(_ context.Context, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.writes++

	return f.writeErr
}

func (f *fakeBus) ReadFrame(_ context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.reads
	f.reads++

	if idx >= len(f.steps) {
		return nil, fmt.Errorf("%w: script exhausted", modbus.ErrTimeout)
	}

	if f.steps[idx].readErr != nil {
		return nil, f.steps[idx].readErr
	}

	return []byte{byte(idx)}, nil
}

func (f *fakeBus) Decode(frame []byte, _ *modbus.Request) (modbus.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := f.steps[frame[0]]
	if st.resp == nil {
		return nil, fmt.Errorf("%w: scripted decode failure", modbus.ErrFrameFormat)
	}

	return st.resp, nil
}

func (f *fakeBus) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.writes
}

func (f *fakeBus) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.reads
}

// pairBus implements modbus.Channel and modbus.Codec for the interleaving
// test: each write latches the request frame, each read answers the latched
// frame. A write arriving while another exchange's read is still pending is
// recorded as a violation, and a crossed pairing surfaces as a validation
// mismatch in the engine.
type pairBus struct {
	mu         sync.Mutex
	inflight   []byte
	pending    bool
	violations int
}

var (
	_ modbus.Channel = (*pairBus)(nil)
	_ modbus.Codec   = (*pairBus)(nil)
)

func (p *pairBus) Encode(req *modbus.Request) ([]byte, error) {
	return []byte{req.UnitID(), byte(req.FunctionCode())}, nil
}

func (p *pairBus) WriteFrame(_ context.Context, frame []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending {
		p.violations++
	}

	p.pending = true
	p.inflight = append([]byte(nil), frame...)

	return nil
}

func (p *pairBus) ReadFrame(_ context.Context) ([]byte, error) {
	// Let the scheduler interleave other callers if the lock discipline
	// were broken.
	time.Sleep(time.Millisecond)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = false

	return append([]byte(nil), p.inflight...), nil
}

func (p *pairBus) Decode(frame []byte, _ *modbus.Request) (modbus.Response, error) {
	return modbus.NewDataResponse(frame[0], modbus.FunctionCode(frame[1]), nil), nil
}

func (p *pairBus) violationCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.violations
}

func newTestTransactor(t *testing.T, bus *fakeBus, cfg *Config) *Transactor {
	t.Helper()

	tr, err := NewTransactor(bus, bus, cfg)
	if err != nil {
		t.Fatalf("newTestTransactor: %v", err)
	}

	return tr
}
