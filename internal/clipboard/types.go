// Package clipboard provides text and image access to the system
// clipboard: copying message text out, and pasting images in as
// attachments.
package clipboard

import "fmt"

// MaxImageSize is the maximum attachment upload size accepted by the
// backend (5MB).
const MaxImageSize = 5 * 1024 * 1024

// MaxImageDimension is the maximum allowed width or height for an image
// attachment.
const MaxImageDimension = 8000

// ImageData represents clipboard image data
type ImageData struct {
	Data      []byte // PNG encoded image data
	MediaType string // MIME type (always "image/png" since we encode to PNG)
	Width     int
	Height    int
}

// Validate checks if the image is within the backend's upload limits.
func (img *ImageData) Validate() error {
	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("image too large: %d bytes (max %d bytes / %.1fMB)",
			len(img.Data), MaxImageSize, float64(MaxImageSize)/1000000)
	}

	if img.Width > MaxImageDimension || img.Height > MaxImageDimension {
		return fmt.Errorf("image dimensions too large: %dx%d (max %dx%d)",
			img.Width, img.Height, MaxImageDimension, MaxImageDimension)
	}

	return nil
}

// SizeKB returns the image size in kilobytes
func (img *ImageData) SizeKB() int {
	return len(img.Data) / 1024
}
