package output

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// checkerboard builds an opaque image of 2x2 red and blue squares
func checkerboard(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/2+y/2)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{0, 0, 255, 255})
			}
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"png", PNG, false},
		{".PNG", PNG, false},
		{"jpg", JPEG, false},
		{"jpeg", JPEG, false},
		{"webp", WebP, false},
		{".tga", TGA, false},
		{"gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatExtension(t *testing.T) {
	for _, f := range Formats {
		parsed, err := ParseFormat(f.Extension())
		if err != nil || parsed != f {
			t.Errorf("Extension %q of %q does not parse back: %v", f.Extension(), f, err)
		}
	}
}

func TestEncodeLosslessFormats(t *testing.T) {
	src := checkerboard(8, 6)

	tests := []struct {
		format Format
		decode func(r *bytes.Reader) (image.Image, error)
	}{
		{PNG, func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }},
		{WebP, func(r *bytes.Reader) (image.Image, error) { return webp.Decode(r) }},
		{TGA, func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, tt.format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := tt.decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 6 {
				t.Fatalf("Unexpected bounds %v", decoded.Bounds())
			}

			for _, p := range []image.Point{{0, 0}, {2, 0}, {3, 3}, {7, 5}} {
				want := src.RGBAAt(p.X, p.Y)
				r, g, b, _ := decoded.At(decoded.Bounds().Min.X+p.X, decoded.Bounds().Min.Y+p.Y).RGBA()
				got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
				if got != want {
					t.Errorf("Pixel %v = %v, want %v", p, got, want)
				}
			}
		})
	}
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, checkerboard(16, 16), JPEG); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("Unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, checkerboard(2, 2), Format("bmp")); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "render.png")
	if err := Save(path, checkerboard(4, 4), PNG); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Output file missing: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("Saved file is not a PNG: %v", err)
	}
}

func TestResize(t *testing.T) {
	src := checkerboard(8, 8)

	up, err := Resize(src, 2)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if up.Bounds().Dx() != 16 || up.Bounds().Dy() != 16 {
		t.Fatalf("Unexpected bounds %v", up.Bounds())
	}
	// Enlarging keeps hard edges
	if up.RGBAAt(3, 3) != src.RGBAAt(1, 1) || up.RGBAAt(4, 0) != src.RGBAAt(2, 0) {
		t.Errorf("Nearest neighbour upscale changed colors")
	}

	down, err := Resize(src, 0.5)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if down.Bounds().Dx() != 4 || down.Bounds().Dy() != 4 {
		t.Errorf("Unexpected bounds %v", down.Bounds())
	}

	if _, err := Resize(src, 0); err == nil {
		t.Error("Expected error for zero scale")
	}
}
