package modbus

import "context"

// Codec turns typed messages into raw frames and back. Implementations own
// the line-discipline framing details (delimiters, checksums); the exchange
// engine only depends on this contract.
type Codec interface {
	// Encode builds the raw request frame for req. Encoding is a pure
	// function of the request; a failure is a programmer or protocol error
	// and is never retried by the engine.
	Encode(req *Request) ([]byte, error)

	// Decode parses a raw frame into a Response, dispatching on the
	// function-code exception convention: codes above ExceptionOffset decode
	// as an ExceptionResponse, anything else as the data response shape
	// expected for req. A malformed or truncated frame fails with a fault
	// wrapping ErrFrameFormat.
	Decode(frame []byte, req *Request) (Response, error)
}

// Channel is an opaque bidirectional byte channel carrying frames.
//
// Channel operations are not required to be reentrant; the exchange engine
// serializes access so that at most one exchange touches the channel at a
// time.
type Channel interface {
	// WriteFrame writes a raw request frame. Failures wrap ErrIO.
	WriteFrame(ctx context.Context, frame []byte) error

	// ReadFrame blocks until a raw response frame arrives. It fails with a
	// fault wrapping ErrTimeout when no frame arrives within the channel's
	// configured timeout, or ErrIO for lower-level stream errors.
	ReadFrame(ctx context.Context) ([]byte, error)
}
