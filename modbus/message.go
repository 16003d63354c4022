package modbus

// Request is an immutable request message addressed to a single device.
//
// Requests carry no exchange state; they are created per call, consumed by
// the exchange engine, and discarded when the call returns.
type Request struct {
	unitID byte
	fc     FunctionCode
	data   []byte
}

// NewRequest creates a Request for the given unit and function code.
// The data payload is copied.
func NewRequest(unitID byte, fc FunctionCode, data []byte) *Request {
	req := &Request{unitID: unitID, fc: fc}
	if len(data) > 0 {
		req.data = make([]byte, len(data))
		copy(req.data, data)
	}

	return req
}

// UnitID returns the address of the target device.
func (r *Request) UnitID() byte { return r.unitID }

// FunctionCode returns the requested operation.
func (r *Request) FunctionCode() FunctionCode { return r.fc }

// Data returns the request payload. The returned slice must not be modified.
func (r *Request) Data() []byte { return r.data }

// Response is a reply received from a device. It is a closed union of
// [DataResponse] and [ExceptionResponse], decided once at decode time by the
// function-code exception convention.
type Response interface {
	// UnitID returns the address of the responding device.
	UnitID() byte
	// FunctionCode returns the base function code the response answers.
	FunctionCode() FunctionCode

	response()
}

// Compile-time checks on the Response union.
var (
	_ Response = (*DataResponse)(nil)
	_ Response = (*ExceptionResponse)(nil)
)

// DataResponse is the nominal reply for a requested operation.
type DataResponse struct {
	unitID byte
	fc     FunctionCode
	data   []byte
}

// NewDataResponse creates a DataResponse. The data payload is copied.
func NewDataResponse(unitID byte, fc FunctionCode, data []byte) *DataResponse {
	resp := &DataResponse{unitID: unitID, fc: fc}
	if len(data) > 0 {
		resp.data = make([]byte, len(data))
		copy(resp.data, data)
	}

	return resp
}

// UnitID returns the address of the responding device.
func (r *DataResponse) UnitID() byte { return r.unitID }

// FunctionCode returns the function code the response answers.
func (r *DataResponse) FunctionCode() FunctionCode { return r.fc }

// Data returns the response payload. The returned slice must not be modified.
func (r *DataResponse) Data() []byte { return r.data }

func (r *DataResponse) response() {}

// ExceptionResponse is a reply signalling the device could not fulfil the
// request as asked. The stored function code is the base code; the wire form
// carries it offset by [ExceptionOffset].
type ExceptionResponse struct {
	unitID byte
	fc     FunctionCode
	code   ExceptionCode
}

// NewExceptionResponse creates an ExceptionResponse. fc may be given in
// either base or exception-offset form; it is normalized to the base code.
func NewExceptionResponse(unitID byte, fc FunctionCode, code ExceptionCode) *ExceptionResponse {
	return &ExceptionResponse{unitID: unitID, fc: fc.Base(), code: code}
}

// UnitID returns the address of the responding device.
func (r *ExceptionResponse) UnitID() byte { return r.unitID }

// FunctionCode returns the base function code of the rejected request.
func (r *ExceptionResponse) FunctionCode() FunctionCode { return r.fc }

// Code returns the reported exception code.
func (r *ExceptionResponse) Code() ExceptionCode { return r.code }

// Err returns the response as an [*ExceptionError] for propagation to callers.
func (r *ExceptionResponse) Err() *ExceptionError {
	return &ExceptionError{Unit: r.unitID, Function: r.fc, Code: r.code}
}

func (r *ExceptionResponse) response() {}
