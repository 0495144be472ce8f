package pipeline

import (
	"context"
	"errors"

	"github.com/dunamismax/cardframe/internal/domain"
)

var (
	// ErrZeroSourceSize marks a degenerate source whose width or height is
	// zero, for which no scale ratio exists.
	ErrZeroSourceSize = errors.New("source image has zero width or height")

	// ErrFrameTooShort marks a source whose resized height is smaller than
	// the card frame, so the crop window would fall outside the image.
	ErrFrameTooShort = errors.New("resized image is shorter than the card frame")
)

// Renderer cuts one card rendition out of an encoded source image: scale to
// the frame width preserving aspect ratio, crop the frame from the top-left
// corner, re-encode. Implementations must be deterministic so that rendering
// the same input twice yields identical bytes.
type Renderer interface {
	Render(ctx context.Context, input []byte, rendition domain.Rendition) (data []byte, format string, width, height int, err error)
}

// scaledHeight is the height of a source scaled to the given width with its
// aspect ratio preserved: floor(width * srcH / srcW). Both renderers use
// this so the too-short check agrees at the boundary regardless of backend.
func scaledHeight(srcW, srcH, width int) int {
	return (width * srcH) / srcW
}

func normalizeOutputFormat(format string) string {
	switch format {
	case "jpg":
		return "jpeg"
	case "jpeg", "png", "webp":
		return format
	default:
		return "png"
	}
}
