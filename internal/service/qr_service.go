package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrSize          = 256
	pngDataURLStart = "data:image/png;base64,"
)

var ErrEmptyText = errors.New("text is required")

type QRService struct {
	Size int
}

func NewQRService() *QRService {
	return &QRService{Size: qrSize}
}

// GenerateDataURL renders text as a PNG QR code and returns it as a data URL.
func (s *QRService) GenerateDataURL(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	png, err := qrcode.Encode(text, qrcode.Medium, s.Size)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return pngDataURLStart + base64.StdEncoding.EncodeToString(png), nil
}
