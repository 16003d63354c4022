package rtu

import (
	"fmt"

	"github.com/edgelink/go-modbus/modbus"
)

// ADU size limits.
const (
	// MaxADUSize is the largest RTU application data unit:
	// unit (1) + function (1) + payload (252) + CRC (2).
	MaxADUSize = 256

	// minADUSize is the smallest well-formed response:
	// unit (1) + function (1) + CRC (2), with an empty payload.
	minADUSize = 4

	// excADUSize is the fixed size of an exception response:
	// unit (1) + function (1) + exception code (1) + CRC (2).
	excADUSize = 5

	crcSize = 2
)

// Codec encodes requests into RTU ADUs and decodes response ADUs, dispatching
// data vs. exception responses on the function-code exception convention.
//
// Codec is stateless and safe for concurrent use.
type Codec struct{}

var _ modbus.Codec = (*Codec)(nil)

// NewCodec creates an RTU codec.
func NewCodec() *Codec { return &Codec{} }

// Encode builds the raw ADU for req: unit + function + payload + CRC-16.
//
// An oversized payload is a protocol error, not a transport fault; the
// exchange engine propagates it without retry.
func (c *Codec) Encode(req *modbus.Request) ([]byte, error) {
	if req == nil {
		return nil, fmt.Errorf("rtu: request is nil")
	}

	size := 2 + len(req.Data()) + crcSize
	if size > MaxADUSize {
		return nil, fmt.Errorf("rtu: request payload %d bytes exceeds ADU limit", len(req.Data()))
	}

	adu := make([]byte, 0, size)
	adu = append(adu, req.UnitID(), byte(req.FunctionCode()))
	adu = append(adu, req.Data()...)

	crc := checksum(adu)
	adu = append(adu, byte(crc), byte(crc>>8))

	return adu, nil
}

// Decode parses a raw response ADU.
//
// The function code decides the variant once, here: codes above the exception
// offset decode as an [*modbus.ExceptionResponse] carrying the base code,
// anything else as the data response for req. Truncated frames and CRC
// mismatches fail with a fault wrapping [modbus.ErrFrameFormat].
func (c *Codec) Decode(frame []byte, req *modbus.Request) (modbus.Response, error) {
	if len(frame) < minADUSize {
		return nil, fmt.Errorf("%w: %d bytes, want at least %d", modbus.ErrFrameFormat, len(frame), minADUSize)
	}
	if len(frame) > MaxADUSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds ADU limit", modbus.ErrFrameFormat, len(frame))
	}

	payload := frame[:len(frame)-crcSize]
	want := checksum(payload)
	got := uint16(frame[len(frame)-2]) | uint16(frame[len(frame)-1])<<8

	if want != got {
		return nil, fmt.Errorf("%w: crc mismatch, want 0x%04X, got 0x%04X", modbus.ErrFrameFormat, want, got)
	}

	unit := payload[0]
	fc := modbus.FunctionCode(payload[1])

	if fc.IsException() {
		if len(frame) != excADUSize {
			return nil, fmt.Errorf("%w: exception frame is %d bytes, want %d", modbus.ErrFrameFormat, len(frame), excADUSize)
		}

		return modbus.NewExceptionResponse(unit, fc.Base(), modbus.ExceptionCode(payload[2])), nil
	}

	return modbus.NewDataResponse(unit, fc, payload[2:]), nil
}
