package modbus

import "fmt"

// ExceptionCode describes why a device rejected or deferred a request.
type ExceptionCode byte

// Standard exception codes.
//
// ExceptionAcknowledge and ExceptionSlaveDeviceBusy are flow-control signals
// rather than failures: acknowledge means the device accepted the request and
// is still processing (re-read, do not resubmit); device busy means the
// device cannot process now (wait and resubmit). All other codes are
// definitive application-level rejections.
const (
	ExceptionIllegalFunction    ExceptionCode = 0x01
	ExceptionIllegalDataAddress ExceptionCode = 0x02
	ExceptionIllegalDataValue   ExceptionCode = 0x03
	ExceptionSlaveDeviceFailure ExceptionCode = 0x04
	ExceptionAcknowledge        ExceptionCode = 0x05
	ExceptionSlaveDeviceBusy    ExceptionCode = 0x06
	ExceptionMemoryParityError  ExceptionCode = 0x08
	ExceptionGatewayPathUnavail ExceptionCode = 0x0A
	ExceptionGatewayNoResponse  ExceptionCode = 0x0B
)

// String returns the conventional name of the exception code.
func (ec ExceptionCode) String() string {
	switch ec {
	case ExceptionIllegalFunction:
		return "illegal function"
	case ExceptionIllegalDataAddress:
		return "illegal data address"
	case ExceptionIllegalDataValue:
		return "illegal data value"
	case ExceptionSlaveDeviceFailure:
		return "slave device failure"
	case ExceptionAcknowledge:
		return "acknowledge"
	case ExceptionSlaveDeviceBusy:
		return "slave device busy"
	case ExceptionMemoryParityError:
		return "memory parity error"
	case ExceptionGatewayPathUnavail:
		return "gateway path unavailable"
	case ExceptionGatewayNoResponse:
		return "gateway target device failed to respond"
	default:
		return "unknown"
	}
}

// ExceptionError is the terminal fault produced when a device answers a
// request with a definitive exception response. It is distinct from the
// transport fault sentinels so callers can tell "the bus is unreliable"
// apart from "the device refused this request".
type ExceptionError struct {
	// Unit is the address of the device that reported the exception.
	Unit byte
	// Function is the base function code of the rejected request.
	Function FunctionCode
	// Code is the reported exception code.
	Code ExceptionCode
}

// Error implements the error interface.
func (e *ExceptionError) Error() string {
	return fmt.Sprintf("modbus: exception %d (%s) from unit %d, function %s",
		byte(e.Code), e.Code.String(), e.Unit, e.Function.String())
}
