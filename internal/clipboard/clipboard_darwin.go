//go:build darwin && cgo

package clipboard

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

#import <Cocoa/Cocoa.h>
#include <stdlib.h>

// readImageFromPasteboard reads image data from the macOS pasteboard and
// returns it PNG-encoded. Handles PNG directly and converts TIFF (what
// screenshots use when copied). Returns the data length, or 0 if no image
// is available.
unsigned long readImageFromPasteboard(void **outData) {
    @autoreleasepool {
        NSPasteboard *pasteboard = [NSPasteboard generalPasteboard];

        NSData *imageData = [pasteboard dataForType:NSPasteboardTypePNG];
        if (imageData != nil) {
            unsigned long len = [imageData length];
            *outData = malloc(len);
            if (*outData == NULL) {
                return 0;
            }
            memcpy(*outData, [imageData bytes], len);
            return len;
        }

        imageData = [pasteboard dataForType:NSPasteboardTypeTIFF];
        if (imageData != nil) {
            NSBitmapImageRep *bitmapRep = [NSBitmapImageRep imageRepWithData:imageData];
            if (bitmapRep != nil) {
                NSData *pngData = [bitmapRep representationUsingType:NSBitmapImageFileTypePNG properties:@{}];
                if (pngData != nil) {
                    unsigned long len = [pngData length];
                    *outData = malloc(len);
                    if (*outData == NULL) {
                        return 0;
                    }
                    memcpy(*outData, [pngData bytes], len);
                    return len;
                }
            }
        }

        *outData = NULL;
        return 0;
    }
}

void freeImageData(void *data) {
    free(data);
}

// writeTextToPasteboard writes text to the macOS pasteboard.
// Returns 1 on success, 0 on failure.
int writeTextToPasteboard(const char *text, unsigned long length) {
    @autoreleasepool {
        NSPasteboard *pasteboard = [NSPasteboard generalPasteboard];
        [pasteboard clearContents];

        NSString *string = [[NSString alloc] initWithBytes:text length:length encoding:NSUTF8StringEncoding];
        if (string == nil) {
            return 0;
        }

        BOOL success = [pasteboard setString:string forType:NSPasteboardTypeString];
        return success ? 1 : 0;
    }
}
*/
import "C"

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"unsafe"

	"talkworld/internal/logger"
)

// Init is a no-op on macOS; the native pasteboard needs no setup.
func Init() error {
	return nil
}

// ReadImage attempts to read an image from the clipboard for use as an
// attachment. Returns nil if the clipboard doesn't contain an image.
func ReadImage() (*ImageData, error) {
	var dataPtr unsafe.Pointer
	length := C.readImageFromPasteboard(&dataPtr)
	if length == 0 || dataPtr == nil {
		return nil, nil
	}
	imgBytes := C.GoBytes(dataPtr, C.int(length))
	C.freeImageData(dataPtr)

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
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	result := C.writeTextToPasteboard(cText, C.ulong(len(text)))
	if result == 0 {
		return fmt.Errorf("failed to write text to clipboard")
	}
	return nil
}
