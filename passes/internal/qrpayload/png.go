package qrpayload

import qrcode "github.com/skip2/go-qrcode"

const DefaultPNGSize = 256

// PNG renders payload as a square QR image of size pixels.
func PNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultPNGSize
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
