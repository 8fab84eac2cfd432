package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessReencodesAsJPEG(t *testing.T) {
	data, mime, err := Process(encodePNG(t, 100, 60))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", mime)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 60 {
		t.Errorf("small image should keep its size, got %v", img.Bounds())
	}
}

func TestProcessDownscalesLargeImages(t *testing.T) {
	data, _, err := Process(encodePNG(t, MaxDimension*2, MaxDimension))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != MaxDimension {
		t.Errorf("expected width %d, got %d", MaxDimension, img.Bounds().Dx())
	}
	if img.Bounds().Dy() != MaxDimension/2 {
		t.Errorf("expected height %d, got %d", MaxDimension/2, img.Bounds().Dy())
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	if _, _, err := Process([]byte("definitely not an image")); err == nil {
		t.Error("expected error for non-image data")
	}
}
