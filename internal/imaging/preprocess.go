// Package imaging turns an uploaded leaf photo into the fixed-shape tensor the
// disease classifier expects.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"agrivision-service/internal/models"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	InputSize = 224
	Channels  = 3
)

// Per-channel normalization: (x - mean) / std maps [0,1] onto [-1,1].
var (
	channelMean = [Channels]float32{0.5, 0.5, 0.5}
	channelStd  = [Channels]float32{0.5, 0.5, 0.5}
)

// Tensor is a CHW float32 tensor.
type Tensor struct {
	Shape [3]int
	Data  []float32
}

func (t *Tensor) At(c, y, x int) float32 {
	return t.Data[(c*t.Shape[1]+y)*t.Shape[2]+x]
}

func (t *Tensor) set(c, y, x int, v float32) {
	t.Data[(c*t.Shape[1]+y)*t.Shape[2]+x] = v
}

// Decode reads a JPEG, PNG or WebP image and returns it as opaque RGB.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, models.NewValidationError("image", "file is empty")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewValidationError("image", "unsupported or corrupt image, upload a jpg, jpeg or png photo")
	}

	return ToRGB(img), nil
}

// ToRGB converts any image mode to non-premultiplied RGB with alpha dropped.
func ToRGB(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// Preprocess resamples img to 224x224 and normalizes it into a 3x224x224 tensor
// with every value in [-1, 1].
func Preprocess(img image.Image) *Tensor {
	rgb := ToRGB(img)
	resized := image.NewNRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.BiLinear.Scale(resized, resized.Bounds(), rgb, rgb.Bounds(), draw.Src, nil)

	t := &Tensor{
		Shape: [3]int{Channels, InputSize, InputSize},
		Data:  make([]float32, Channels*InputSize*InputSize),
	}
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			off := resized.PixOffset(x, y)
			for c := 0; c < Channels; c++ {
				v := float32(resized.Pix[off+c]) / 255
				t.set(c, y, x, (v-channelMean[c])/channelStd[c])
			}
		}
	}
	return t
}
