package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/cardframe/internal/domain"
)

// RenderFile is the one-shot entry point used by the CLI: read the source
// image, cut the card, write it to dstPath. The output format is inferred
// from the destination extension. Nothing is written when any stage fails.
func RenderFile(ctx context.Context, srcPath, dstPath string, frameWidth, frameHeight int) error {
	renderer, err := newRenderer()
	if err != nil {
		return fmt.Errorf("build renderer: %w", err)
	}

	input, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read source image %s: %w", srcPath, err)
	}

	rendition := domain.Rendition{
		ID:          "card",
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		Format:      formatFromPath(dstPath),
	}

	data, _, _, _, err := renderer.Render(ctx, input, rendition)
	if err != nil {
		return fmt.Errorf("render card: %w", err)
	}

	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		return fmt.Errorf("write card file %s: %w", dstPath, err)
	}
	return nil
}

func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return normalizeOutputFormat(ext)
}
