package rtu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgelink/go-modbus/modbus"
)

// Golden frames from the classic read-holding-registers exchange:
// unit 0x11, start 0x006B, quantity 3.
var (
	goldenRequest  = []byte{0x11, 0x03, 0x00, 0x6B, 0x00, 0x03, 0x76, 0x87}
	goldenResponse = []byte{0x11, 0x03, 0x06, 0xAE, 0x41, 0x56, 0x52, 0x43, 0x40, 0x49, 0xAD}
)

// withCRC appends the CRC-16 to payload in wire order.
func withCRC(payload []byte) []byte {
	crc := checksum(payload)

	return append(append([]byte{}, payload...), byte(crc), byte(crc>>8))
}

func TestChecksum_KnownVector(t *testing.T) {
	crc := checksum(goldenRequest[:6])
	assert.Equal(t, uint16(0x8776), crc)
}

func TestEncode(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x11, modbus.FuncReadHoldingRegisters, []byte{0x00, 0x6B, 0x00, 0x03})

	adu, err := codec.Encode(req)
	require.NoError(t, err)
	assert.Equal(t, goldenRequest, adu)
}

func TestEncode_EmptyPayload(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x01, modbus.FuncReadCoils, nil)

	adu, err := codec.Encode(req)
	require.NoError(t, err)
	require.Len(t, adu, 4)
	assert.Equal(t, byte(0x01), adu[0])
	assert.Equal(t, byte(modbus.FuncReadCoils), adu[1])
}

func TestEncode_PayloadTooLarge(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x01, modbus.FuncWriteMultipleRegisters, make([]byte, 253))

	_, err := codec.Encode(req)
	require.Error(t, err)
}

func TestEncode_NilRequest(t *testing.T) {
	_, err := NewCodec().Encode(nil)
	require.Error(t, err)
}

func TestDecode_DataResponse(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x11, modbus.FuncReadHoldingRegisters, []byte{0x00, 0x6B, 0x00, 0x03})

	resp, err := codec.Decode(goldenResponse, req)
	require.NoError(t, err)

	data, ok := resp.(*modbus.DataResponse)
	require.True(t, ok)
	assert.Equal(t, byte(0x11), data.UnitID())
	assert.Equal(t, modbus.FuncReadHoldingRegisters, data.FunctionCode())
	assert.Equal(t, []byte{0x06, 0xAE, 0x41, 0x56, 0x52, 0x43, 0x40}, data.Data())
}

func TestDecode_ExceptionResponse(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x11, modbus.FuncReadHoldingRegisters, nil)

	frame := withCRC([]byte{0x11, 0x83, 0x02})

	resp, err := codec.Decode(frame, req)
	require.NoError(t, err)

	exc, ok := resp.(*modbus.ExceptionResponse)
	require.True(t, ok)
	assert.Equal(t, byte(0x11), exc.UnitID())
	assert.Equal(t, modbus.FuncReadHoldingRegisters, exc.FunctionCode())
	assert.Equal(t, modbus.ExceptionIllegalDataAddress, exc.Code())
}

func TestDecode_CRCMismatch(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x11, modbus.FuncReadHoldingRegisters, nil)

	frame := append([]byte{}, goldenResponse...)
	frame[3] ^= 0xFF // corrupt one payload byte

	_, err := codec.Decode(frame, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, modbus.ErrFrameFormat)
}

func TestDecode_Truncated(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x11, modbus.FuncReadHoldingRegisters, nil)

	for _, frame := range [][]byte{nil, {0x11}, {0x11, 0x03}, {0x11, 0x03, 0x06}} {
		_, err := codec.Decode(frame, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, modbus.ErrFrameFormat)
	}
}

func TestDecode_ExceptionFrameWrongLength(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x11, modbus.FuncReadHoldingRegisters, nil)

	// A well-checksummed exception frame with a trailing extra byte.
	frame := withCRC([]byte{0x11, 0x83, 0x02, 0x00})

	_, err := codec.Decode(frame, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, modbus.ErrFrameFormat)
}

func TestDecode_Oversized(t *testing.T) {
	codec := NewCodec()
	req := modbus.NewRequest(0x11, modbus.FuncReadHoldingRegisters, nil)

	_, err := codec.Decode(make([]byte, MaxADUSize+1), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, modbus.ErrFrameFormat)
}
