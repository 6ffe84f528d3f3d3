package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/vladimirvivien/go4vl/v4l2"

	"camview/pkg/utils/rgb"
)

// FourCC codes go4vl has no named constant for.
var (
	PixelFmtBGR24 = fourCC('B', 'G', 'R', '3')
	PixelFmtYU12  = fourCC('Y', 'U', '1', '2')
	PixelFmtYV12  = fourCC('Y', 'V', '1', '2')
)

func fourCC(a, b, c, d byte) v4l2.FourCCType {
	return v4l2.FourCCType(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// Decode turns one raw device frame into an image.Image. The caller owns
// data; packed RGB decodes keep a reference to it, so it must not be a
// live driver buffer. Unknown formats are tried as JPEG, which covers
// the many MJPG-variant codes in the wild.
func Decode(data []byte, format v4l2.FourCCType, width, height int) (image.Image, error) {
	switch format {
	case v4l2.PixelFmtJPEG, v4l2.PixelFmtMJPEG:
		return jpeg.Decode(bytes.NewReader(data))
	case v4l2.PixelFmtYUYV:
		return DecodeYUYV(data, width, height)
	case v4l2.PixelFmtRGB24:
		if err := checkPacked24(data, width, height); err != nil {
			return nil, err
		}
		return rgb.NewRGB(data, width, height), nil
	case PixelFmtBGR24:
		if err := checkPacked24(data, width, height); err != nil {
			return nil, err
		}
		return rgb.NewBGR(data, width, height), nil
	case PixelFmtYU12:
		return decodePlanar420(data, width, height, false)
	case PixelFmtYV12:
		return decodePlanar420(data, width, height, true)
	default:
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unsupported pixel format %q: %w", FourCCString(format), err)
		}
		return img, nil
	}
}

// FourCCString renders a FOURCC code as its four characters.
func FourCCString(f v4l2.FourCCType) string {
	return string([]byte{
		byte(f),
		byte(f >> 8),
		byte(f >> 16),
		byte(f >> 24),
	})
}

// DecodeYUYV converts a packed YUYV (4:2:2) frame. Two horizontally
// adjacent pixels share one Cb/Cr pair.
func DecodeYUYV(data []byte, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 || width%2 != 0 {
		return nil, fmt.Errorf("bad yuyv dimensions %dx%d", width, height)
	}
	if len(data) < width*height*2 {
		return nil, fmt.Errorf("yuyv frame too short: %d bytes for %dx%d", len(data), width, height)
	}

	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio422)
	for i := range img.Cb {
		ii := i * 4
		img.Y[i*2] = data[ii]
		img.Y[i*2+1] = data[ii+2]
		img.Cb[i] = data[ii+1]
		img.Cr[i] = data[ii+3]
	}

	return img, nil
}

// decodePlanar420 handles YU12/YV12: a full Y plane followed by
// quarter-size chroma planes, V first when vFirst is set.
func decodePlanar420(data []byte, width, height int, vFirst bool) (image.Image, error) {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("bad planar dimensions %dx%d", width, height)
	}
	ySize := width * height
	cSize := ySize / 4
	if len(data) < ySize+2*cSize {
		return nil, fmt.Errorf("planar frame too short: %d bytes for %dx%d", len(data), width, height)
	}

	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)
	copy(img.Y, data[:ySize])
	if vFirst {
		copy(img.Cr, data[ySize:ySize+cSize])
		copy(img.Cb, data[ySize+cSize:ySize+2*cSize])
	} else {
		copy(img.Cb, data[ySize:ySize+cSize])
		copy(img.Cr, data[ySize+cSize:ySize+2*cSize])
	}

	return img, nil
}

func checkPacked24(data []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("bad dimensions %dx%d", width, height)
	}
	if len(data) < width*height*3 {
		return fmt.Errorf("packed frame too short: %d bytes for %dx%d", len(data), width, height)
	}
	return nil
}
