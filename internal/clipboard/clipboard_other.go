//go:build !darwin || (darwin && !cgo)

package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.design/x/clipboard"

	"talkworld/internal/logger"
)

// initialized tracks whether the clipboard has been initialized
var initialized bool

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.Log("Clipboard: Failed to initialize: %v", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	return nil
}

// ReadImage attempts to read an image from the clipboard for use as an
// attachment. Returns nil if the clipboard doesn't contain an image.
func ReadImage() (*ImageData, error) {
	if !initialized {
		if err := Init(); err != nil {
			return nil, err
		}
	}

	imgBytes := clipboard.Read(clipboard.FmtImage)
	if len(imgBytes) == 0 {
		return nil, nil // No image in clipboard, not an error
	}

	img, format, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		logger.Log("Clipboard: Failed to decode image: %v", err)
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}

	bounds := img.Bounds()
	logger.Log("Clipboard: Image decoded: %dx%d, format=%s", bounds.Dx(), bounds.Dy(), format)

	// Re-encode as PNG for a consistent upload format
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	return &ImageData{
		Data:      pngBuf.Bytes(),
		MediaType: "image/png",
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if !initialized {
		if err := Init(); err != nil {
			return err
		}
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.Log("Clipboard: Wrote %d bytes of text", len(text))
	return nil
}
