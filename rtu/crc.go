package rtu

// crcPoly is the reversed CRC-16 generator polynomial used by RTU framing.
const crcPoly uint16 = 0xA001

// checksum computes the CRC-16 of data with initial value 0xFFFF.
//
// The wire order is low byte first, high byte second.
func checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)

	for _, b := range data {
		crc ^= uint16(b)

		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ crcPoly
			} else {
				crc >>= 1
			}
		}
	}

	return crc
}
