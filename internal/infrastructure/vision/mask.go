package vision

import (
	"context"
	"fmt"
	"math"

	"fragment-analyzer/internal/domain/entity"
)

// NativeSegmenter сегментация на чистом Go, без OpenCV.
type NativeSegmenter struct{}

// NewNativeSegmenter создаёт сегментатор на чистом Go.
func NewNativeSegmenter() *NativeSegmenter {
	return &NativeSegmenter{}
}

// BuildMask переводит изображение в серый, размывает, бинаризует и чистит морфологией.
func (s *NativeSegmenter) BuildMask(ctx context.Context, img *entity.ImageBuffer, cfg entity.Configuration) (*entity.BinaryMask, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalize()

	gray := grayscale(img)
	gray = gaussianBlur(gray, img.Width, img.Height, cfg.BlurRadius)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask := entity.NewBinaryMask(img.Width, img.Height)
	threshold(gray, mask.Pix, uint8(cfg.BinaryThreshold))

	if cfg.MorphKernelSize > 0 {
		k := cfg.MorphKernelSize
		if cfg.CloseIterations > 0 {
			mask.Pix = closeMask(mask.Pix, img.Width, img.Height, k, cfg.CloseIterations)
		}
		if cfg.OpenIterations > 0 {
			mask.Pix = openMask(mask.Pix, img.Width, img.Height, k, cfg.OpenIterations)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return mask, nil
}

// grayscale считает яркость по весам 0.299/0.587/0.114 в фиксированной точке.
func grayscale(img *entity.ImageBuffer) []uint8 {
	out := make([]uint8, img.Width*img.Height)
	for i := range out {
		r := uint32(img.Pix[i*4])
		g := uint32(img.Pix[i*4+1])
		b := uint32(img.Pix[i*4+2])
		out[i] = uint8((r*4899 + g*9617 + b*1868 + 8192) >> 14)
	}
	return out
}

// gaussianKernel повторяет правило OpenCV для sigma=0: фиксированные таблицы
// для ядер до 7, иначе sigma выводится из размера.
func gaussianKernel(size int) []float64 {
	switch size {
	case 1:
		return []float64{1}
	case 3:
		return []float64{0.25, 0.5, 0.25}
	case 5:
		return []float64{0.0625, 0.25, 0.375, 0.25, 0.0625}
	case 7:
		return []float64{0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125}
	}
	sigma := ((float64(size)-1)*0.5-1)*0.3 + 0.8
	k := make([]float64, size)
	var sum float64
	c := float64(size-1) / 2
	for i := range k {
		d := float64(i) - c
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// reflect101 отражает индекс за границей без повтора крайнего пикселя (gfedcb|abcdefgh|gfedcba).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// gaussianBlur раздельное размытие по строкам и столбцам.
func gaussianBlur(src []uint8, w, h, size int) []uint8 {
	if size <= 1 {
		return src
	}
	kernel := gaussianKernel(size)
	half := size / 2

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var acc float64
			for k, kv := range kernel {
				acc += kv * float64(row[reflect101(x+k-half, w)])
			}
			tmp[y*w+x] = acc
		}
	}

	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k, kv := range kernel {
				acc += kv * tmp[reflect101(y+k-half, h)*w+x]
			}
			out[y*w+x] = clampByte(math.Round(acc))
		}
	}
	return out
}

func threshold(gray, dst []uint8, t uint8) {
	for i, v := range gray {
		if v > t {
			dst[i] = 255
		} else {
			dst[i] = 0
		}
	}
}

// closeMask закрытие: iterations расширений, затем столько же сужений.
func closeMask(pix []uint8, w, h, k, iterations int) []uint8 {
	for i := 0; i < iterations; i++ {
		pix = morph(pix, w, h, k, true)
	}
	for i := 0; i < iterations; i++ {
		pix = morph(pix, w, h, k, false)
	}
	return pix
}

// openMask открытие: iterations сужений, затем столько же расширений.
func openMask(pix []uint8, w, h, k, iterations int) []uint8 {
	for i := 0; i < iterations; i++ {
		pix = morph(pix, w, h, k, false)
	}
	for i := 0; i < iterations; i++ {
		pix = morph(pix, w, h, k, true)
	}
	return pix
}

// morph расширение (dilate=true) или сужение квадратным элементом k×k.
// Пиксели за границей изображения не влияют на результат.
func morph(src []uint8, w, h, k int, dilate bool) []uint8 {
	if k <= 1 {
		return src
	}
	half := k / 2
	pick := func(a, b uint8) uint8 {
		if dilate == (b > a) {
			return b
		}
		return a
	}

	tmp := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lo, hi := maxInt(0, x-half), minInt(w-1, x+half)
			v := src[y*w+lo]
			for xx := lo + 1; xx <= hi; xx++ {
				v = pick(v, src[y*w+xx])
			}
			tmp[y*w+x] = v
		}
	}

	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		lo, hi := maxInt(0, y-half), minInt(h-1, y+half)
		for x := 0; x < w; x++ {
			v := tmp[lo*w+x]
			for yy := lo + 1; yy <= hi; yy++ {
				v = pick(v, tmp[yy*w+x])
			}
			out[y*w+x] = v
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func checkMask(mask *entity.BinaryMask) error {
	if mask == nil || mask.Width <= 0 || mask.Height <= 0 {
		return entity.ErrEmptyImage
	}
	if len(mask.Pix) != mask.Width*mask.Height {
		return fmt.Errorf("malformed mask: %d bytes for %dx%d", len(mask.Pix), mask.Width, mask.Height)
	}
	return nil
}
