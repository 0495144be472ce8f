package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dunamismax/cardframe/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestLocalProcessorRendersCards(t *testing.T) {
	tmp := t.TempDir()
	inputPath := filepath.Join(tmp, "ChangeList.png")
	outputDir := filepath.Join(tmp, "out")

	require.NoError(t, os.WriteFile(inputPath, buildTestPNG(t, 2400, 1260), 0o644))

	processor, err := NewLocalProcessor(outputDir)
	require.NoError(t, err)

	result, err := processor.Process(context.Background(), Request{
		JobID:      "job-local-1",
		SourceType: SourceTypeLocalFile,
		ObjectKey:  inputPath,
		Renditions: []domain.Rendition{
			{ID: "og_card"},
			{ID: "thumb", FrameWidth: 300, FrameHeight: 150, Format: "jpeg", Quality: 75},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Outputs, 2)
	require.Positive(t, result.SourceBytes)

	card := result.Outputs[0]
	require.Equal(t, "og_card", card.RenditionID)
	require.Equal(t, "png", card.Format)
	require.Equal(t, domain.DefaultFrameWidth, card.Width)
	require.Equal(t, domain.DefaultFrameHeight, card.Height)

	data, err := os.ReadFile(card.Path)
	require.NoError(t, err)
	img := decodePNG(t, data)
	require.Equal(t, domain.DefaultFrameWidth, img.Bounds().Dx())
	require.Equal(t, domain.DefaultFrameHeight, img.Bounds().Dy())

	thumb := result.Outputs[1]
	require.Equal(t, "jpeg", thumb.Format)
	require.Equal(t, 300, thumb.Width)
	require.Equal(t, 150, thumb.Height)
}

func TestLocalProcessorInfeasibleRenditionWritesNothing(t *testing.T) {
	tmp := t.TempDir()
	inputPath := filepath.Join(tmp, "ChangeList.png")
	outputDir := filepath.Join(tmp, "out")

	require.NoError(t, os.WriteFile(inputPath, buildTestPNG(t, 2400, 1260), 0o644))

	// A square frame from a 40:21 source: floor(300*1260/2400) = 157 < 300.
	_, err := mustProcessor(t, outputDir).Process(context.Background(), Request{
		JobID:      "job-square",
		SourceType: SourceTypeLocalFile,
		ObjectKey:  inputPath,
		Renditions: []domain.Rendition{
			{ID: "square", FrameWidth: 300, FrameHeight: 300, Format: "jpeg"},
		},
	})
	require.ErrorIs(t, err, ErrFrameTooShort)

	_, statErr := os.Stat(outputDir)
	require.True(t, os.IsNotExist(statErr), "expected no output to be written")
}

func mustProcessor(t *testing.T, outputDir string) *Processor {
	t.Helper()
	processor, err := NewLocalProcessor(outputDir)
	require.NoError(t, err)
	return processor
}

func TestLocalProcessorShortSourceWritesNothing(t *testing.T) {
	tmp := t.TempDir()
	inputPath := filepath.Join(tmp, "wide.png")
	outputDir := filepath.Join(tmp, "out")

	// Aspect ratio 0.4 < 630/1200, so the crop cannot fit.
	require.NoError(t, os.WriteFile(inputPath, buildTestPNG(t, 1000, 400), 0o644))

	processor, err := NewLocalProcessor(outputDir)
	require.NoError(t, err)

	_, err = processor.Process(context.Background(), Request{
		JobID:      "job-short",
		SourceType: SourceTypeLocalFile,
		ObjectKey:  inputPath,
		Renditions: []domain.Rendition{{ID: "og_card"}},
	})
	require.ErrorIs(t, err, ErrFrameTooShort)

	_, statErr := os.Stat(outputDir)
	require.True(t, os.IsNotExist(statErr), "expected no output to be written")
}

func TestLocalProcessorMissingSource(t *testing.T) {
	tmp := t.TempDir()
	outputDir := filepath.Join(tmp, "out")

	processor, err := NewLocalProcessor(outputDir)
	require.NoError(t, err)

	_, err = processor.Process(context.Background(), Request{
		JobID:      "job-missing",
		SourceType: SourceTypeLocalFile,
		ObjectKey:  filepath.Join(tmp, "ChangeList.png"),
		Renditions: []domain.Rendition{{ID: "og_card"}},
	})
	require.Error(t, err)

	_, statErr := os.Stat(outputDir)
	require.True(t, os.IsNotExist(statErr), "expected no output to be written")
}

func TestLocalProcessorUnsupportedSourceType(t *testing.T) {
	processor, err := NewLocalProcessor(t.TempDir())
	require.NoError(t, err)

	_, err = processor.Process(context.Background(), Request{
		JobID:      "job-unsupported",
		SourceType: "s3_presigned",
		ObjectKey:  "uploads/job/source",
		Renditions: []domain.Rendition{{ID: "og_card"}},
	})
	require.ErrorIs(t, err, ErrUnsupportedSourceType)
}

func TestRenderFile(t *testing.T) {
	tmp := t.TempDir()
	srcPath := filepath.Join(tmp, "ChangeList.png")
	dstPath := filepath.Join(tmp, "ChangeList_crop.png")

	require.NoError(t, os.WriteFile(srcPath, buildTestPNG(t, 2400, 1260), 0o644))

	err := RenderFile(context.Background(), srcPath, dstPath, domain.DefaultFrameWidth, domain.DefaultFrameHeight)
	require.NoError(t, err)

	data, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	img := decodePNG(t, data)
	require.Equal(t, domain.DefaultFrameWidth, img.Bounds().Dx())
	require.Equal(t, domain.DefaultFrameHeight, img.Bounds().Dy())
}

func TestRenderFileMissingSource(t *testing.T) {
	tmp := t.TempDir()
	dstPath := filepath.Join(tmp, "ChangeList_crop.png")

	err := RenderFile(context.Background(), filepath.Join(tmp, "ChangeList.png"), dstPath, 0, 0)
	require.Error(t, err)

	_, statErr := os.Stat(dstPath)
	require.True(t, os.IsNotExist(statErr), "expected no output file")
}
