package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// EnhanceOptions controls Enhance.
type EnhanceOptions struct {
	// TargetMinDimension is the pixel floor for the shorter image side.
	// Smaller images are scaled up proportionally; larger ones are kept.
	TargetMinDimension int

	// Contrast is the contrast multiplier; 1 leaves the image unchanged.
	Contrast float64

	// Sharpness is the sharpness multiplier; 1 leaves the image unchanged.
	Sharpness float64
}

// DefaultEnhanceOptions returns the options used for OCR input.
func DefaultEnhanceOptions() EnhanceOptions {
	return EnhanceOptions{
		TargetMinDimension: 2000,
		Contrast:           2.0,
		Sharpness:          2.0,
	}
}

// Enhance returns an upscaled, contrast and sharpness boosted copy of img.
// The input is never modified.
func Enhance(img image.Image, opts EnhanceOptions) *image.NRGBA {
	out := resize(img, opts.TargetMinDimension)
	if opts.Contrast != 1 {
		adjustContrast(out, opts.Contrast)
	}
	if opts.Sharpness != 1 {
		out = adjustSharpness(out, opts.Sharpness)
	}
	return out
}

// resize scales img so that its shorter side is at least minDim pixels,
// using Catmull-Rom resampling. Images already large enough are copied.
func resize(img image.Image, minDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	shorter := w
	if h < shorter {
		shorter = h
	}

	if shorter == 0 || minDim <= 0 || shorter >= minDim {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	scale := float64(minDim) / float64(shorter)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// adjustContrast blends every pixel with the mean luminance of the image:
// out = mean + factor*(in-mean). Alpha is left untouched.
func adjustContrast(img *image.NRGBA, factor float64) {
	n := len(img.Pix) / 4
	if n == 0 {
		return
	}

	var sum float64
	for i := 0; i < len(img.Pix); i += 4 {
		sum += luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
	}
	mean := float64(int(sum/float64(n) + 0.5))

	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(img.Pix[i+c])
			img.Pix[i+c] = clamp(mean + factor*(v-mean))
		}
	}
}

// adjustSharpness blends the image with a smoothed copy of itself:
// out = smooth + factor*(in-smooth). Border pixels have no full
// neighbourhood and are copied unchanged.
func adjustSharpness(img *image.NRGBA, factor float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)
	if w < 3 || h < 3 {
		return out
	}

	stride := img.Stride
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*stride + x*4
			for c := 0; c < 3; c++ {
				// 3x3 smoothing kernel: centre weight 5, neighbours 1, sum 13.
				s := 5 * float64(img.Pix[i+c])
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						s += float64(img.Pix[i+dy*stride+dx*4+c])
					}
				}
				smooth := s / 13
				v := float64(img.Pix[i+c])
				out.Pix[i+c] = clamp(smooth + factor*(v-smooth))
			}
		}
	}
	return out
}

func luminance(r, g, b uint8) float64 {
	return (float64(r)*299 + float64(g)*587 + float64(b)*114) / 1000
}

func clamp(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
