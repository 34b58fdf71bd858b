package valueobjects

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func TestNewImageData(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "empty data should fail",
			data:    []byte{},
			wantErr: true,
		},
		{
			name:    "nil data should fail",
			data:    nil,
			wantErr: true,
		},
		{
			name:    "invalid image data should fail",
			data:    []byte{0x00, 0x01, 0x02},
			wantErr: true,
		},
		{
			name:    "png should succeed",
			data:    encodePNG(t),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImageData(tt.data, "image/jpeg")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewImageData() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewImageData_MimeTypeFollowsContent(t *testing.T) {
	imageData, err := NewImageData(encodePNG(t), "application/octet-stream")
	if err != nil {
		t.Fatalf("NewImageData() error = %v", err)
	}

	if imageData.MimeType() != "image/png" {
		t.Errorf("Expected image/png, got %s", imageData.MimeType())
	}
	if !strings.HasPrefix(imageData.DataURL(), "data:image/png;base64,") {
		t.Errorf("Unexpected data URL prefix: %.30s", imageData.DataURL())
	}
}

func TestImageData_ToJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	if err != nil {
		t.Fatalf("Failed to create test JPEG: %v", err)
	}

	imageData, err := NewImageData(buf.Bytes(), "image/jpeg")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}

	t.Run("JPEG to JPEG should return same instance", func(t *testing.T) {
		result, err := imageData.ToJPEG()
		if err != nil {
			t.Errorf("ToJPEG() error = %v", err)
		}
		if result != imageData {
			t.Errorf("Expected same instance for JPEG to JPEG conversion")
		}
	})

	t.Run("format should be JPEG", func(t *testing.T) {
		if imageData.Format() != JPEG {
			t.Errorf("Expected format JPEG, got %v", imageData.Format())
		}
	})

	t.Run("IsJPEG should return true", func(t *testing.T) {
		if !imageData.IsJPEG() {
			t.Errorf("IsJPEG() should return true for JPEG image")
		}
	})
}

func TestImageData_GIFIsConvertedForVideo(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), []color.Color{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("Failed to create test GIF: %v", err)
	}

	imageData, err := NewImageData(buf.Bytes(), "image/gif")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}
	if imageData.IsVideoFrameCompatible() {
		t.Fatalf("GIF should not be accepted as a video frame")
	}

	converted, err := imageData.ToJPEG()
	if err != nil {
		t.Fatalf("ToJPEG() error = %v", err)
	}
	if !converted.IsVideoFrameCompatible() || converted.MimeType() != "image/jpeg" {
		t.Errorf("Converted image should be a JPEG frame, got %s", converted.MimeType())
	}
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to create test PNG: %v", err)
	}
	return buf.Bytes()
}
