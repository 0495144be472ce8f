//go:build govips && cgo

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/dunamismax/cardframe/internal/domain"
)

type govipsRenderer struct{}

func (t govipsRenderer) Render(ctx context.Context, input []byte, rendition domain.Rendition) ([]byte, string, int, int, error) {
	select {
	case <-ctx.Done():
		return nil, "", 0, 0, ctx.Err()
	default:
	}

	img, err := vips.NewImageFromBuffer(input)
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("decode source image: %w", err)
	}
	defer img.Close()

	frameW, frameH := rendition.Frame()

	if img.Width() <= 0 || img.Height() <= 0 {
		return nil, "", 0, 0, ErrZeroSourceSize
	}

	targetH := scaledHeight(img.Width(), img.Height(), frameW)
	if targetH < frameH {
		return nil, "", 0, 0, fmt.Errorf("%w: scaled height %d < frame height %d", ErrFrameTooShort, targetH, frameH)
	}

	if img.Width() != frameW {
		// Pin both axes so libvips lands on frameW x targetH exactly; a
		// single float scale can round the height up past the floor value.
		hscale := float64(frameW) / float64(img.Width())
		vscale := float64(targetH) / float64(img.Height())
		if err := img.ResizeWithVScale(hscale, vscale, vips.KernelLanczos3); err != nil {
			return nil, "", 0, 0, fmt.Errorf("scale image: %w", err)
		}
	}
	if err := img.ExtractArea(0, 0, frameW, frameH); err != nil {
		return nil, "", 0, 0, fmt.Errorf("crop card frame: %w", err)
	}

	format := formatForRendition(rendition.Format, input)
	data, err := exportGovipsImage(img, format, rendition.Quality)
	if err != nil {
		return nil, "", 0, 0, err
	}

	return data, format, img.Width(), img.Height(), nil
}

func formatForRendition(renditionFormat string, input []byte) string {
	if strings.TrimSpace(renditionFormat) != "" {
		return normalizeOutputFormat(strings.ToLower(strings.TrimSpace(renditionFormat)))
	}

	switch vips.DetermineImageType(input) {
	case vips.ImageTypeJPEG:
		return "jpeg"
	case vips.ImageTypeWEBP:
		return "webp"
	default:
		return "png"
	}
}

func exportGovipsImage(img *vips.ImageRef, format string, quality int) ([]byte, error) {
	switch format {
	case "jpeg":
		params := vips.NewJpegExportParams()
		if quality > 0 && quality <= 100 {
			params.Quality = quality
		}
		data, _, err := img.ExportJpeg(params)
		if err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		return data, nil
	case "png":
		params := vips.NewPngExportParams()
		if quality > 0 && quality <= 100 {
			params.Quality = quality
		}
		data, _, err := img.ExportPng(params)
		if err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return data, nil
	case "webp":
		params := vips.NewWebpExportParams()
		if quality > 0 && quality <= 100 {
			params.Quality = quality
		}
		data, _, err := img.ExportWebp(params)
		if err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
