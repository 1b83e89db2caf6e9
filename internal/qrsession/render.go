package qrsession

import (
	"github.com/skip2/go-qrcode"
)

// RenderPNG encodes content as a square PNG of size pixels.
func RenderPNG(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}

// RenderTerminal draws content with half-block characters for a terminal.
func RenderTerminal(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}
