package service

// QRCodeService defines the interface for QR code generation.
type QRCodeService interface {
	// GenerateAppLinkQR renders the given app URL as a PNG QR code, used by
	// the install endpoint so users can open the PWA on a phone.
	GenerateAppLinkQR(url string) ([]byte, error)
}
