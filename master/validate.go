package master

import (
	"fmt"

	"github.com/edgelink/go-modbus/modbus"
)

// validateResponse checks that resp structurally answers req: same function
// code and same unit address.
//
// Exception responses are exempt — on the wire they legitimately carry the
// request's function code offset by the exception flag, which the decode step
// has already normalized, so an exception is by construction a reply to the
// outstanding request.
//
// Both mismatch faults are transient: a frame corrupted in transit can decode
// as a well-formed but wrong response, and resubmission is the right remedy.
func validateResponse(req *modbus.Request, resp modbus.Response) error {
	if _, ok := resp.(*modbus.ExceptionResponse); ok {
		return nil
	}

	if resp.FunctionCode() != req.FunctionCode() {
		return fmt.Errorf("%w: request %s, response %s",
			modbus.ErrFunctionCodeMismatch, req.FunctionCode(), resp.FunctionCode())
	}

	if resp.UnitID() != req.UnitID() {
		return fmt.Errorf("%w: request unit %d, response unit %d",
			modbus.ErrUnitIDMismatch, req.UnitID(), resp.UnitID())
	}

	return nil
}
