package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func TestProcessImage_DownscalesLargeImages(t *testing.T) {
	out, err := processImage(encodePNG(t, 1200, 900))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	img, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp output: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("expected 800x600 (aspect preserved), got %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessImage_KeepsSmallImages(t *testing.T) {
	out, err := processImage(encodePNG(t, 300, 200))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	img, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp output: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("expected original 300x200, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessImage_PortraitBound(t *testing.T) {
	out, err := processImage(encodePNG(t, 400, 1600))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	img, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp output: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 800 {
		t.Errorf("expected 200x800, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessImage_RejectsGarbage(t *testing.T) {
	if _, err := processImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected decode error for non-image input")
	}
}

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://sweetshop-images.s3.us-east-1.amazonaws.com/sweets/abc-123.webp", "sweets/abc-123.webp"},
		{"http://localhost:9000/sweetshop-images/sweets/def.webp", "sweets/def.webp"},
	}

	for _, tc := range cases {
		got, err := keyFromURL(tc.url)
		if err != nil {
			t.Fatalf("keyFromURL(%q): %v", tc.url, err)
		}
		if got != tc.want {
			t.Errorf("keyFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
