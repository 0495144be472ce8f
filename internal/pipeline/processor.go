package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/cardframe/internal/domain"
)

const SourceTypeLocalFile = domain.SourceTypeLocalFile

var ErrUnsupportedSourceType = errors.New("unsupported source_type")

type Request struct {
	JobID      string
	SourceType string
	ObjectKey  string
	Renditions []domain.Rendition
}

type Output struct {
	RenditionID string
	Format      string
	Path        string
	Bytes       int
	Width       int
	Height      int
	Success     bool
}

type Result struct {
	SourceBytes int
	Outputs     []Output
}

type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

type Emitter interface {
	Emit(ctx context.Context, req Request, rendition domain.Rendition, data []byte, format string, width, height int) (Output, error)
}

// Processor runs the card pipeline for one job: fetch the source once, render
// each requested rendition, emit the results. A failed rendition aborts the
// whole job; there are no retries at this layer.
type Processor struct {
	fetcher  Fetcher
	renderer Renderer
	emitter  Emitter
}

func NewLocalProcessor(outputDir string) (*Processor, error) {
	renderer, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	return &Processor{
		fetcher:  LocalFileFetcher{},
		renderer: renderer,
		emitter:  LocalFileEmitter{OutputDir: outputDir},
	}, nil
}

func NewObjectStoreProcessor(fetcher Fetcher, emitter Emitter) (*Processor, error) {
	renderer, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	return &Processor{
		fetcher:  fetcher,
		renderer: renderer,
		emitter:  emitter,
	}, nil
}

func (p *Processor) Process(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.JobID) == "" {
		return Result{}, errors.New("job_id is required")
	}
	if len(req.Renditions) == 0 {
		return Result{}, errors.New("job must request at least one rendition")
	}

	sourceBytes, err := p.fetcher.Fetch(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch stage: %w", err)
	}

	out := Result{
		SourceBytes: len(sourceBytes),
		Outputs:     make([]Output, 0, len(req.Renditions)),
	}
	for _, rendition := range req.Renditions {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		rendered, format, width, height, err := p.renderer.Render(ctx, sourceBytes, rendition)
		if err != nil {
			return Result{}, fmt.Errorf("render stage rendition=%s: %w", rendition.ID, err)
		}

		written, err := p.emitter.Emit(ctx, req, rendition, rendered, format, width, height)
		if err != nil {
			return Result{}, fmt.Errorf("emit stage rendition=%s: %w", rendition.ID, err)
		}
		out.Outputs = append(out.Outputs, written)
	}

	return out, nil
}

type LocalFileFetcher struct{}

func (LocalFileFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if !strings.EqualFold(req.SourceType, SourceTypeLocalFile) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSourceType, req.SourceType)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(req.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("read source image %s: %w", req.ObjectKey, err)
	}
	return data, nil
}

type LocalFileEmitter struct {
	OutputDir string
}

func (e LocalFileEmitter) Emit(_ context.Context, req Request, rendition domain.Rendition, data []byte, format string, width, height int) (Output, error) {
	if strings.TrimSpace(e.OutputDir) == "" {
		return Output{}, errors.New("output directory is required")
	}
	if strings.TrimSpace(rendition.ID) == "" {
		return Output{}, errors.New("rendition id is required")
	}

	jobDir := filepath.Join(e.OutputDir, sanitizePathToken(req.JobID))
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return Output{}, fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("%s.%s", sanitizePathToken(rendition.ID), normalizeOutputFormat(format))
	fullPath := filepath.Join(jobDir, filename)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return Output{}, fmt.Errorf("write card file: %w", err)
	}

	return Output{
		RenditionID: rendition.ID,
		Format:      normalizeOutputFormat(format),
		Path:        fullPath,
		Bytes:       len(data),
		Width:       width,
		Height:      height,
		Success:     true,
	}, nil
}

func sanitizePathToken(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return "unknown"
	}

	var b strings.Builder
	b.Grow(len(in))
	for _, r := range in {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
