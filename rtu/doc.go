// Package rtu implements the RTU frame codec: the binary application data
// unit consisting of a unit address, the protocol data unit (function code
// plus payload), and a trailing CRC-16 transmitted low byte first.
//
// The codec satisfies [modbus.Codec] and carries no exchange policy of its
// own; retry and validation decisions live in the master package. Physical
// framing (the 3.5-character silent interval delimiting ADUs on a serial
// line) is a channel concern, not a codec concern.
package rtu
