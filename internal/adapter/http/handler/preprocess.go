package handler

import (
	"image"

	"github.com/nfnt/resize"

	"github.com/chandlerpc/SignSpeak/internal/domain/entity"
)

// imageToTensor resizes a decoded image to size×size and converts it
// to an HWC float tensor with channel values scaled to [0, 1]. The
// pipeline's normalizer adds the batch dimension.
func imageToTensor(img image.Image, size int) *entity.Tensor {
	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	data := make([]float32, 0, height*width*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			data = append(data,
				float32(r)/65535.0,
				float32(g)/65535.0,
				float32(b)/65535.0,
			)
		}
	}

	return &entity.Tensor{
		Shape: entity.Shape{height, width, 3},
		Data:  data,
	}
}
