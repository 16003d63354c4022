// Package modbus defines the protocol model shared by every layer of the
// go-modbus master stack: typed request/response messages, the function-code
// and exception-code conventions, the fault taxonomy, and the two boundaries
// (Codec and Channel) the exchange engine is built against.
//
// # Messages
//
// A [Request] carries a unit ID (the slave address on the bus), a function
// code, and an opaque data payload. A [Response] is one of two variants
// decided once at decode time:
//
//   - [DataResponse] — the nominal reply for the requested operation.
//   - [ExceptionResponse] — the device rejected or deferred the request,
//     carrying an [ExceptionCode].
//
// The variant is signalled on the wire by the function code: a response
// function code above [ExceptionOffset] (0x80) marks an exception frame
// whose base code identifies the original operation.
//
// # Faults
//
// The sentinel errors in this package form the fault classes the exchange
// engine keys its retry policy on. [IsTransient] reports whether a fault is
// retry-eligible (timeout, I/O, malformed frame, response mismatch); an
// [ExceptionError] is a definitive, never-retried rejection by the device,
// except for the acknowledge and device-busy codes which the engine handles
// by waiting rather than failing.
package modbus
