package imaging

import (
	"image"
	"math"
	"sort"
)

// BinarizeOptions controls Binarize.
type BinarizeOptions struct {
	// BlockSize is the odd side length of the neighbourhood used to compute
	// each pixel's threshold.
	BlockSize int

	// Offset is subtracted from the weighted neighbourhood mean; a pixel is
	// white when it is brighter than mean-Offset.
	Offset float64

	// Denoise applies a 3x3 median filter to the thresholded image.
	Denoise bool
}

// DefaultBinarizeOptions returns the options used for OCR input.
func DefaultBinarizeOptions() BinarizeOptions {
	return BinarizeOptions{
		BlockSize: 11,
		Offset:    2,
		Denoise:   true,
	}
}

// Binarize converts img to grayscale and applies an adaptive threshold
// computed from a Gaussian-weighted neighbourhood, producing a pure black
// and white image. Uneven lighting in scans is compensated because each
// pixel is compared with its surroundings rather than a global level.
func Binarize(img image.Image, opts BinarizeOptions) *image.Gray {
	gray := toGray(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w == 0 || h == 0 {
		return gray
	}

	block := opts.BlockSize
	if block < 3 {
		block = 3
	}
	if block%2 == 0 {
		block++
	}

	mean := gaussianBlur(gray, block)
	out := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range gray.Pix {
		if float64(v) > float64(mean[i])-opts.Offset {
			out.Pix[i] = 255
		}
	}

	if opts.Denoise {
		out = median3(out)
	}
	return out
}

// toGray copies img into a zero-origin grayscale image.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Pix[y*out.Stride+x] = uint8(luminance(uint8(r>>8), uint8(g>>8), uint8(bl>>8)) + 0.5)
		}
	}
	return out
}

// gaussianKernel returns a normalised 1-D kernel of the given odd size with
// sigma derived from the size the same way common vision libraries do.
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	k := make([]float64, size)
	half := size / 2
	var sum float64
	for i := range k {
		d := float64(i - half)
		k[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// gaussianBlur applies a separable Gaussian blur with replicated borders
// and returns the blurred pixels in row-major order.
func gaussianBlur(img *image.Gray, size int) []uint8 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	k := gaussianKernel(size)
	half := size / 2

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := 0; x < w; x++ {
			var s float64
			for i, kv := range k {
				xx := clampIndex(x+i-half, w)
				s += kv * float64(row[xx])
			}
			tmp[y*w+x] = s
		}
	}

	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var s float64
			for i, kv := range k {
				yy := clampIndex(y+i-half, h)
				s += kv * tmp[yy*w+x]
			}
			out[y*w+x] = clamp(s)
		}
	}
	return out
}

// median3 replaces each pixel with the median of its 3x3 neighbourhood,
// removing isolated specks left by thresholding.
func median3(img *image.Gray) *image.Gray {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := image.NewGray(img.Rect)
	var window [9]uint8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					xx := clampIndex(x+dx, w)
					yy := clampIndex(y+dy, h)
					window[n] = img.Pix[yy*img.Stride+xx]
					n++
				}
			}
			s := window[:]
			sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
			out.Pix[y*out.Stride+x] = s[4]
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
