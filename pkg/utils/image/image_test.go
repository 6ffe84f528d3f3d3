package image

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/vladimirvivien/go4vl/v4l2"
)

func TestFourCCString(t *testing.T) {
	if s := FourCCString(v4l2.PixelFmtYUYV); s != "YUYV" {
		t.Fatalf("got %q, want YUYV", s)
	}
	if s := FourCCString(PixelFmtBGR24); s != "BGR3" {
		t.Fatalf("got %q, want BGR3", s)
	}
}

func TestDecodeJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	data, err := EncodeJPEG(src, 90)
	if err != nil {
		t.Fatal(err)
	}

	img, err := Decode(data, v4l2.PixelFmtMJPEG, 8, 6)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("got %dx%d, want 8x6", b.Dx(), b.Dy())
	}
}

func TestDecodeYUYV(t *testing.T) {
	const w, h = 4, 2
	data := make([]byte, w*h*2)
	for i := range data {
		data[i] = 0x80
	}
	// first pixel pair: Y0 Cb Y1 Cr
	data[0], data[1], data[2], data[3] = 0x10, 0x80, 0x20, 0x80

	img, err := DecodeYUYV(data, w, h)
	if err != nil {
		t.Fatal(err)
	}
	ycc, ok := img.(*image.YCbCr)
	if !ok {
		t.Fatalf("got %T, want *image.YCbCr", img)
	}
	if ycc.Y[0] != 0x10 || ycc.Y[1] != 0x20 {
		t.Fatalf("luma not preserved: % x", ycc.Y[:2])
	}

	if _, err := DecodeYUYV(data[:4], w, h); err == nil {
		t.Fatal("expected error for short frame")
	}
}

func TestDecodePlanar(t *testing.T) {
	const w, h = 4, 4
	data := make([]byte, w*h+2*(w*h/4))
	for i := 0; i < w*h; i++ {
		data[i] = 0x42
	}
	// chroma planes: first plane 0xAA, second 0xBB
	for i := w * h; i < w*h+w*h/4; i++ {
		data[i] = 0xaa
	}
	for i := w*h + w*h/4; i < len(data); i++ {
		data[i] = 0xbb
	}

	yu, err := Decode(data, PixelFmtYU12, w, h)
	if err != nil {
		t.Fatal(err)
	}
	yv, err := Decode(data, PixelFmtYV12, w, h)
	if err != nil {
		t.Fatal(err)
	}
	if yu.(*image.YCbCr).Cb[0] != 0xaa || yv.(*image.YCbCr).Cr[0] != 0xaa {
		t.Fatal("chroma plane order wrong")
	}
}

func TestDecodeRGBAndBGR(t *testing.T) {
	const w, h = 2, 1
	data := []byte{1, 2, 3, 4, 5, 6}

	img, err := Decode(data, v4l2.PixelFmtRGB24, w, h)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 1 || g>>8 != 2 || b>>8 != 3 {
		t.Fatalf("rgb order wrong: %d %d %d", r>>8, g>>8, b>>8)
	}

	img, err = Decode(data, PixelFmtBGR24, w, h)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ = img.At(0, 0).RGBA()
	if r>>8 != 3 || g>>8 != 2 || b>>8 != 1 {
		t.Fatalf("bgr order wrong: %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	if _, err := Decode([]byte{0, 1, 2}, fourCC('H', '2', '6', '4'), 2, 2); err == nil {
		t.Fatal("expected error for undecodable frame")
	}
}

func TestEncodeJPEGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))
	data, err := EncodeJPEG(src, 85)
	if err != nil {
		t.Fatal(err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Fatalf("got %dx%d, want 640x480", b.Dx(), b.Dy())
	}
}

func TestPixelRange(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 50, 100, 150, 0xff
	}
	img.Pix[0] = 10 // lone dark sample

	min, max := PixelRange(img)
	if min != 10 || max != 150 {
		t.Fatalf("got min=%d max=%d, want 10/150", min, max)
	}
}
