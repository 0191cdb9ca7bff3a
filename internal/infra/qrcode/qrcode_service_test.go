package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestQRCodeService_GenerateAppLinkQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateAppLinkQR("https://disciplined.example.com")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG image")
}

func TestQRCodeService_EmptyURL(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateAppLinkQR("")
	assert.Error(t, err)
	assert.Nil(t, png)
}

func TestQRCodeService_UnknownCorrectionLevelDefaultsToMedium(t *testing.T) {
	svc := NewQRCodeService(128, "X")

	png, err := svc.GenerateAppLinkQR("https://disciplined.example.com/install")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
}
