package domain

import "testing"

func TestCreateJobRequestValidate(t *testing.T) {
	valid := CreateJobRequest{
		SourceType: SourceTypeS3Presigned,
		Renditions: []Rendition{
			{
				ID: "og_card",
			},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got error: %v", err)
	}

	invalid := CreateJobRequest{}
	if err := invalid.Validate(); err == nil {
		t.Fatal("expected validation error for empty request")
	}

	missingObjectKey := CreateJobRequest{
		SourceType: SourceTypeLocalFile,
		Renditions: []Rendition{
			{
				ID: "og_card",
			},
		},
	}
	if err := missingObjectKey.Validate(); err == nil {
		t.Fatal("expected validation error for local_file object_key")
	}

	unsupportedSourceType := CreateJobRequest{
		SourceType: "http_url",
		Renditions: []Rendition{
			{
				ID: "og_card",
			},
		},
	}
	if err := unsupportedSourceType.Validate(); err == nil {
		t.Fatal("expected validation error for unsupported source_type")
	}

	negativeFrame := CreateJobRequest{
		SourceType: SourceTypeS3Presigned,
		Renditions: []Rendition{
			{
				ID:         "og_card",
				FrameWidth: -1,
			},
		},
	}
	if err := negativeFrame.Validate(); err == nil {
		t.Fatal("expected validation error for negative frame width")
	}
}

func TestRenditionFrameDefaults(t *testing.T) {
	w, h := Rendition{ID: "og_card"}.Frame()
	if w != DefaultFrameWidth || h != DefaultFrameHeight {
		t.Fatalf("expected default frame %dx%d, got %dx%d", DefaultFrameWidth, DefaultFrameHeight, w, h)
	}

	w, h = Rendition{ID: "banner", FrameWidth: 600, FrameHeight: 200}.Frame()
	if w != 600 || h != 200 {
		t.Fatalf("expected frame 600x200, got %dx%d", w, h)
	}
}
