package modbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionCode_ExceptionConvention(t *testing.T) {
	assert.False(t, FuncReadHoldingRegisters.IsException())
	assert.True(t, FuncReadHoldingRegisters.Exception().IsException())

	assert.Equal(t, FuncReadHoldingRegisters, FuncReadHoldingRegisters.Exception().Base())
	assert.Equal(t, FunctionCode(0x83), FuncReadHoldingRegisters.Exception())

	// The offset itself does not mark an exception; only codes above it do.
	assert.False(t, ExceptionOffset.IsException())

	assert.Equal(t, "0x03", FuncReadHoldingRegisters.String())
}

func TestRequest_CopiesPayload(t *testing.T) {
	payload := []byte{0x00, 0x01}
	req := NewRequest(1, FuncReadCoils, payload)

	payload[0] = 0xFF
	assert.Equal(t, []byte{0x00, 0x01}, req.Data())
}

func TestDataResponse_CopiesPayload(t *testing.T) {
	payload := []byte{0xAB}
	resp := NewDataResponse(1, FuncReadCoils, payload)

	payload[0] = 0x00
	assert.Equal(t, []byte{0xAB}, resp.Data())
}

func TestExceptionResponse_NormalizesFunctionCode(t *testing.T) {
	// Both base and offset forms produce the base code.
	resp := NewExceptionResponse(9, FuncReadHoldingRegisters.Exception(), ExceptionSlaveDeviceBusy)
	assert.Equal(t, FuncReadHoldingRegisters, resp.FunctionCode())

	resp = NewExceptionResponse(9, FuncReadHoldingRegisters, ExceptionSlaveDeviceBusy)
	assert.Equal(t, FuncReadHoldingRegisters, resp.FunctionCode())
}

func TestExceptionResponse_Err(t *testing.T) {
	resp := NewExceptionResponse(9, FuncReadHoldingRegisters, ExceptionIllegalFunction)

	err := resp.Err()
	require.Error(t, err)
	assert.Equal(t, byte(9), err.Unit)
	assert.Equal(t, FuncReadHoldingRegisters, err.Function)
	assert.Equal(t, ExceptionIllegalFunction, err.Code)
	assert.Contains(t, err.Error(), "illegal function")
}
