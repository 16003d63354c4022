package modbus

import "errors"

// Sentinel faults for the master exchange. Concrete codecs and channels wrap
// these with context via fmt.Errorf("%w: ...") so the exchange engine can
// classify outcomes with errors.Is.
var (
	// Transport faults.
	ErrTimeout     = errors.New("modbus: response timeout")
	ErrIO          = errors.New("modbus: i/o failure")
	ErrFrameFormat = errors.New("modbus: malformed response frame")

	// Validation faults. A corrupted frame can pass low-level decode and
	// still fail structural matching against the request.
	ErrFunctionCodeMismatch = errors.New("modbus: response function code mismatch")
	ErrUnitIDMismatch       = errors.New("modbus: response unit ID mismatch")
)

// transientFaults are the retry-eligible fault classes: expected in normal
// operation on a noisy or slow bus and worth a full resubmission.
var transientFaults = []error{
	ErrTimeout,
	ErrIO,
	ErrFrameFormat,
	ErrFunctionCodeMismatch,
	ErrUnitIDMismatch,
}

// IsTransient reports whether err belongs to a retry-eligible fault class.
func IsTransient(err error) bool {
	for _, fault := range transientFaults {
		if errors.Is(err, fault) {
			return true
		}
	}

	return false
}
