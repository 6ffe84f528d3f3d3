package image

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
)

func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func EncodeJPEGFile(img image.Image, file string, quality int) error {
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0660)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
}

// PixelRange reports the smallest and largest 8-bit sample value over all
// color channels. Useful as a quick stuck-sensor check.
func PixelRange(img image.Image) (min, max uint8) {
	b := img.Bounds()
	if b.Empty() {
		return 0, 0
	}
	min = 0xff
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			for _, v := range [3]uint32{r, g, bl} {
				s := uint8(v >> 8)
				if s < min {
					min = s
				}
				if s > max {
					max = s
				}
			}
		}
	}

	return min, max
}
