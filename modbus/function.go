package modbus

import "fmt"

// FunctionCode identifies the operation requested of a device.
//
// Codes above ExceptionOffset are not operations: they flag an exception
// response for the operation identified by the base code.
type FunctionCode byte

// ExceptionOffset is the function-code offset marking exception responses.
// A device reports an exception by echoing the request's function code with
// this offset added.
const ExceptionOffset FunctionCode = 0x80

// Standard public function codes.
const (
	FuncReadCoils              FunctionCode = 0x01
	FuncReadDiscreteInputs     FunctionCode = 0x02
	FuncReadHoldingRegisters   FunctionCode = 0x03
	FuncReadInputRegisters     FunctionCode = 0x04
	FuncWriteSingleCoil        FunctionCode = 0x05
	FuncWriteSingleRegister    FunctionCode = 0x06
	FuncWriteMultipleCoils     FunctionCode = 0x0F
	FuncWriteMultipleRegisters FunctionCode = 0x10
	FuncMaskWriteRegister      FunctionCode = 0x16
	FuncReadWriteMultipleRegs  FunctionCode = 0x17
	FuncReadFIFOQueue          FunctionCode = 0x18
)

// IsException reports whether fc marks an exception response frame.
func (fc FunctionCode) IsException() bool {
	return fc > ExceptionOffset
}

// Base returns the function code with the exception offset removed,
// identifying the operation the frame answers.
func (fc FunctionCode) Base() FunctionCode {
	return fc &^ ExceptionOffset
}

// Exception returns the function code with the exception offset applied.
func (fc FunctionCode) Exception() FunctionCode {
	return fc | ExceptionOffset
}

// String returns the code in the conventional 0xNN form.
func (fc FunctionCode) String() string {
	return fmt.Sprintf("0x%02X", byte(fc))
}
