// Package tcp provides a [modbus.Channel] over a TCP stream, for buses
// reached through a serial-to-TCP gateway or for RTU-over-TCP devices.
//
// Frame boundaries on the stream are recovered the way a serial RTU receiver
// recovers them: a response begins with its first byte arriving within the
// response timeout, and ends when the line goes silent for the idle timeout.
package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/edgelink/go-modbus/logger"
	"github.com/edgelink/go-modbus/modbus"
)

// Default channel timeouts.
const (
	// DefaultResponseTimeout is the maximum wait for the first byte of a
	// response frame.
	DefaultResponseTimeout = 1 * time.Second

	// DefaultIdleTimeout is the inter-byte silence that terminates a frame.
	// It stands in for the 3.5-character gap of a real serial line, padded
	// for TCP delivery jitter.
	DefaultIdleTimeout = 20 * time.Millisecond

	// DefaultWriteTimeout bounds the transmission of one request frame.
	DefaultWriteTimeout = 1 * time.Second
)

// maxFrameSize is the largest frame the reader accepts; one RTU ADU.
const maxFrameSize = 256

// Channel is a modbus.Channel carried over a net.Conn.
//
// Channel is not safe for concurrent use on its own; the exchange engine's
// serialization is what makes shared use safe.
type Channel struct {
	conn   net.Conn
	reader *bufio.Reader
	logger logger.Logger

	responseTimeout time.Duration
	idleTimeout     time.Duration
	writeTimeout    time.Duration
}

var _ modbus.Channel = (*Channel)(nil)

// NewChannel wraps conn as a frame channel.
func NewChannel(conn net.Conn, opts ...Option) (*Channel, error) {
	if conn == nil {
		return nil, errors.New("tcp: conn is nil")
	}

	ch := &Channel{
		conn:            conn,
		reader:          bufio.NewReader(conn),
		logger:          logger.GetLogger(),
		responseTimeout: DefaultResponseTimeout,
		idleTimeout:     DefaultIdleTimeout,
		writeTimeout:    DefaultWriteTimeout,
	}

	for _, opt := range opts {
		if err := opt.apply(ch); err != nil {
			return nil, err
		}
	}

	return ch, nil
}

// Close closes the underlying connection.
func (ch *Channel) Close() error {
	return ch.conn.Close()
}

// WriteFrame writes one request frame to the stream.
func (ch *Channel) WriteFrame(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := ch.conn.SetWriteDeadline(ch.deadline(ctx, ch.writeTimeout)); err != nil {
		return fmt.Errorf("%w: set write deadline: %w", modbus.ErrIO, err)
	}

	for written := 0; written < len(frame); {
		n, err := ch.conn.Write(frame[written:])
		written += n

		if err != nil {
			return fmt.Errorf("%w: write frame: %w", modbus.ErrIO, err)
		}
	}

	return nil
}

// ReadFrame reads one response frame from the stream.
//
// The first byte is awaited up to the response timeout; each subsequent byte
// up to the idle timeout. Idle-timeout silence after at least one byte marks
// the end of the frame.
func (ch *Channel) ReadFrame(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	first, err := ch.readByte(ctx, ch.responseTimeout)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: no response within %v", modbus.ErrTimeout, ch.responseTimeout)
		}

		return nil, fmt.Errorf("%w: read frame: %w", modbus.ErrIO, err)
	}

	frame := make([]byte, 1, 64)
	frame[0] = first

	for len(frame) < maxFrameSize {
		b, err := ch.readByte(ctx, ch.idleTimeout)
		if err != nil {
			if isTimeout(err) {
				// Silence: the frame is complete.
				return frame, nil
			}

			return nil, fmt.Errorf("%w: read frame: %w", modbus.ErrIO, err)
		}

		frame = append(frame, b)
	}

	ch.logger.Warn("tcp: frame reached size limit without inter-frame silence",
		"size", len(frame))

	return frame, nil
}

// readByte reads a single byte with the given timeout, bounded by any ctx
// deadline.
func (ch *Channel) readByte(ctx context.Context, timeout time.Duration) (byte, error) {
	if err := ch.conn.SetReadDeadline(ch.deadline(ctx, timeout)); err != nil {
		return 0, err
	}

	return ch.reader.ReadByte()
}

// deadline returns now+timeout, clamped to the ctx deadline when that is
// earlier.
func (ch *Channel) deadline(ctx context.Context, timeout time.Duration) time.Time {
	d := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}

	return d
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

// Option is a functional option for configuring a Channel.
type Option interface {
	apply(*Channel) error
}

type optFunc func(*Channel) error

func (f optFunc) apply(ch *Channel) error { return f(ch) }

// WithResponseTimeout sets the maximum wait for the first response byte.
func WithResponseTimeout(d time.Duration) Option {
	return optFunc(func(ch *Channel) error {
		if d <= 0 {
			return errors.New("tcp: response timeout must be positive")
		}
		ch.responseTimeout = d

		return nil
	})
}

// WithIdleTimeout sets the inter-byte silence that terminates a frame.
func WithIdleTimeout(d time.Duration) Option {
	return optFunc(func(ch *Channel) error {
		if d <= 0 {
			return errors.New("tcp: idle timeout must be positive")
		}
		ch.idleTimeout = d

		return nil
	})
}

// WithWriteTimeout sets the bound on transmitting one request frame.
func WithWriteTimeout(d time.Duration) Option {
	return optFunc(func(ch *Channel) error {
		if d <= 0 {
			return errors.New("tcp: write timeout must be positive")
		}
		ch.writeTimeout = d

		return nil
	})
}

// WithLogger sets the logger for the channel.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(ch *Channel) error {
		if l == nil {
			return errors.New("tcp: logger must not be nil")
		}
		ch.logger = l

		return nil
	})
}
