package glutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFlipRows(t *testing.T) {
	for _, h := range []int{1, 2, 3, 4} {
		img := image.NewNRGBA(image.Rect(0, 0, 2, h))
		for y := 0; y < h; y++ {
			img.SetNRGBA(0, y, color.NRGBA{R: uint8(y), A: 255})
		}

		flipRows(img)

		for y := 0; y < h; y++ {
			if have, want := img.NRGBAAt(0, y).R, uint8(h-1-y); have != want {
				t.Fatalf("height %v: row %v has %v; want %v", h, y, have, want)
			}
		}
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if have, want := decoded.Bounds(), img.Bounds(); have != want {
		t.Fatalf("bounds %v; want %v", have, want)
	}
	r, g, b, _ := decoded.At(2, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel = %v, %v, %v", r>>8, g>>8, b>>8)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "shot.png")
	if err := SavePNG(path, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Fatal("SavePNG succeeded into a missing directory")
	}
}

func TestReadFramebufferEmpty(t *testing.T) {
	// Zero sizes return before touching GL.
	if img := ReadFramebuffer(0, 10); !img.Bounds().Empty() {
		t.Fatalf("bounds %v", img.Bounds())
	}
}
