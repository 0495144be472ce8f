package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/dunamismax/cardframe/internal/domain"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

type lanczosRenderer struct{}

func (t lanczosRenderer) Render(ctx context.Context, input []byte, rendition domain.Rendition) ([]byte, string, int, int, error) {
	select {
	case <-ctx.Done():
		return nil, "", 0, 0, ctx.Err()
	default:
	}

	src, srcFormat, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("decode source image: %w", err)
	}

	frameW, frameH := rendition.Frame()

	scaled, err := scaleToWidth(src, frameW)
	if err != nil {
		return nil, "", 0, 0, err
	}

	card, err := cropToFrame(scaled, frameW, frameH)
	if err != nil {
		return nil, "", 0, 0, err
	}

	format := normalizeOutputFormat(strings.ToLower(strings.TrimSpace(rendition.Format)))
	if strings.TrimSpace(rendition.Format) == "" {
		format = normalizeOutputFormat(strings.ToLower(srcFormat))
	}

	output, err := encodeImage(card, format, rendition.Quality)
	if err != nil {
		return nil, "", 0, 0, err
	}

	bounds := card.Bounds()
	return output, format, bounds.Dx(), bounds.Dy(), nil
}

// scaleToWidth scales src to the given width, keeping the aspect ratio. The
// scaled height is floor(width * srcH / srcW). Lanczos3 resampling matches
// the quality of the frame crop's upstream producers; a source already at the
// target width passes through untouched so the 1:1 case stays lossless.
func scaleToWidth(src image.Image, width int) (image.Image, error) {
	bounds := src.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, ErrZeroSourceSize
	}

	if srcW == width {
		return src, nil
	}

	height := scaledHeight(srcW, srcH, width)
	if height < 1 {
		height = 1
	}

	return resize.Resize(uint(width), uint(height), src, resize.Lanczos3), nil
}

// cropToFrame extracts the width x height window anchored at the top-left
// corner of src.
func cropToFrame(src image.Image, width, height int) (image.Image, error) {
	bounds := src.Bounds()
	if bounds.Dx() < width {
		return nil, fmt.Errorf("%w: scaled width %d < frame width %d", ErrFrameTooShort, bounds.Dx(), width)
	}
	if bounds.Dy() < height {
		return nil, fmt.Errorf("%w: scaled height %d < frame height %d", ErrFrameTooShort, bounds.Dy(), height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst, nil
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg":
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case "png":
		encoder := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := encoder.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case "webp":
		return nil, fmt.Errorf("webp export requires the govips build tag")
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return buf.Bytes(), nil
}
