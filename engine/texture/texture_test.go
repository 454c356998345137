package texture

import (
	"image"
	"image/color"
	"testing"
)

func TestSetAndGetPixel(t *testing.T) {
	tex := New(4, 4, RGBA)
	tex.SetRed(1, 1, 10)
	tex.SetGreen(1, 1, 20)
	tex.SetBlue(1, 1, 30)
	tex.SetAlpha(1, 1, 40)

	if got := tex.Red(1, 1); got != 10 {
		t.Errorf("Red(1,1) = %d, want 10", got)
	}
	if got := tex.Green(1, 1); got != 20 {
		t.Errorf("Green(1,1) = %d, want 20", got)
	}
	if got := tex.Blue(1, 1); got != 30 {
		t.Errorf("Blue(1,1) = %d, want 30", got)
	}
	if got := tex.Alpha(1, 1); got != 40 {
		t.Errorf("Alpha(1,1) = %d, want 40", got)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 1 && y == 1 {
				continue
			}
			if tex.Red(x, y)|tex.Green(x, y)|tex.Blue(x, y)|tex.Alpha(x, y) != 0 {
				t.Errorf("pixel (%d,%d) changed", x, y)
			}
		}
	}
}

func TestRGBAlpha(t *testing.T) {
	tex := New(2, 2, RGB)
	if len(tex.Pixels) != 12 {
		t.Fatalf("len(Pixels) = %d, want 12", len(tex.Pixels))
	}
	tex.SetAlpha(0, 0, 7)
	if got := tex.Alpha(0, 0); got != 255 {
		t.Errorf("RGB Alpha = %d, want 255", got)
	}
	tex.SetPixel(1, 1, 1, 2, 3, 4)
	if tex.Red(1, 1) != 1 || tex.Green(1, 1) != 2 || tex.Blue(1, 1) != 3 {
		t.Errorf("SetPixel on RGB = %v", tex.Pixels[9:12])
	}
}

func TestOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Red(4,0) did not panic")
		}
	}()
	New(4, 4, RGBA).Red(4, 0)
}

func TestSetDepth(t *testing.T) {
	tex := New(4, 1, RGB)
	copy(tex.Pixels, []byte{0, 60, 130, 200, 255, 100, 1, 2, 3, 4, 5, 6})
	tex.SetDepth(2)
	for i, v := range tex.Pixels {
		if v != 0 && v != 255 {
			t.Errorf("Pixels[%d] = %d after SetDepth(2), want 0 or 255", i, v)
		}
	}
	if tex.Pixels[2] != 255 || tex.Pixels[1] != 0 {
		t.Errorf("SetDepth(2) rounding: got %d,%d", tex.Pixels[1], tex.Pixels[2])
	}

	tex = New(1, 1, RGB)
	copy(tex.Pixels, []byte{0, 128, 255})
	tex.SetDepth(3)
	want := []byte{0, 128, 255}
	for i := range want {
		if tex.Pixels[i] != want[i] {
			t.Errorf("SetDepth(3) Pixels[%d] = %d, want %d", i, tex.Pixels[i], want[i])
		}
	}
}

func TestSetDepthIgnoresInvalid(t *testing.T) {
	tex := New(1, 1, RGB)
	copy(tex.Pixels, []byte{17, 99, 201})
	tex.SetDepth(1)
	tex.SetDepth(300)
	if tex.Pixels[0] != 17 || tex.Pixels[1] != 99 || tex.Pixels[2] != 201 {
		t.Errorf("Pixels = %v, want unchanged", tex.Pixels)
	}
}

func TestFlipVertical(t *testing.T) {
	tex := New(1, 3, RGB)
	copy(tex.Pixels, []byte{1, 1, 1, 2, 2, 2, 3, 3, 3})
	tex.FlipVertical()
	if tex.Red(0, 0) != 3 || tex.Red(0, 1) != 2 || tex.Red(0, 2) != 1 {
		t.Errorf("FlipVertical rows = %v", tex.Pixels)
	}
}

func TestBlit(t *testing.T) {
	dst := New(4, 4, RGBA)
	src := New(2, 2, RGBA)
	src.SetPixel(1, 1, 9, 9, 9, 9)
	if err := dst.Blit(src, 2, 1); err != nil {
		t.Fatal(err)
	}
	if dst.Red(3, 2) != 9 {
		t.Errorf("Red(3,2) = %d, want 9", dst.Red(3, 2))
	}
	if err := dst.Blit(src, 3, 3); err == nil {
		t.Error("Blit outside bounds succeeded")
	}
	if err := dst.Blit(New(1, 1, RGB), 0, 0); err == nil {
		t.Error("Blit across formats succeeded")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(1, 0, color.NRGBA{R: 255, A: 255})
	tex := FromImage(img)
	if tex.Width != 2 || tex.Height != 1 || tex.Format != RGBA {
		t.Fatalf("FromImage = %dx%d %v", tex.Width, tex.Height, tex.Format)
	}
	if tex.Red(1, 0) != 255 || tex.Alpha(1, 0) != 255 {
		t.Errorf("pixel (1,0) = %v", tex.Pixels[4:8])
	}
}
