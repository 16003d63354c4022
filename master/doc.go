// Package master implements the master-side unicast exchange engine for a
// Modbus-style field bus.
//
// A [Transactor] owns one [modbus.Channel] plus one [modbus.Codec] and runs
// the request/response state machine for it: write the request frame, read
// the response frame (re-reading without resubmission while the device
// acknowledges), classify the outcome, and retry, wait-and-retry, or
// propagate.
//
// # Exchange policy
//
// Transport-level faults (timeout, I/O, malformed frame) and structural
// mismatches between request and response are transient: the full write/read
// cycle is resubmitted up to the configured retry budget, then the last fault
// is propagated. "Retries" counts additional attempts beyond the first, so a
// budget of n allows n+1 total cycles.
//
// Two exception codes are flow control rather than failures and never consume
// the budget:
//
//   - acknowledge — the device accepted the request and is still processing.
//     The engine sleeps the configured wait interval and reads again without
//     resubmitting.
//   - slave device busy — the device cannot process now. The engine sleeps
//     the wait interval and resubmits.
//
// Both loops are unbounded by design; the context passed to
// [Transactor.Unicast] is the caller's handle for cancelling a perpetually
// busy device. Any other exception code is a definitive rejection and
// propagates immediately as a [*modbus.ExceptionError].
//
// # Concurrency
//
// A Transactor may be shared by any number of goroutines. Exchanges are
// serialized on an internal mutex held from the request write through the
// final read of that exchange, so a response frame can never be consumed by
// another caller's read. The mutex is released before validation and before
// the busy/transient backoff sleeps, so backoff never holds the channel
// hostage.
package master
