package entity

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrEmptyImage возвращается для изображения без пикселей.
var ErrEmptyImage = errors.New("empty image")

// ImageBuffer декодированная RGBA-сетка пикселей. На время анализа не изменяется.
type ImageBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA, 4 байта на пиксель, построчно
}

// NewImageBuffer копирует произвольное изображение в RGBA-буфер.
func NewImageBuffer(img image.Image) *ImageBuffer {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &ImageBuffer{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    rgba.Pix,
	}
}

// Validate проверяет согласованность размеров и данных.
func (b *ImageBuffer) Validate() error {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return ErrEmptyImage
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("malformed image buffer: %d bytes for %dx%d", len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// RGBAAt возвращает компоненты пикселя (x, y).
func (b *ImageBuffer) RGBAAt(x, y int) (r, g, bl, a uint8) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Image возвращает копию буфера как *image.RGBA.
func (b *ImageBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// BinaryMask двухцветная маска: 0 фон, 255 объект.
type BinaryMask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBinaryMask создаёт пустую маску заданного размера.
func NewBinaryMask(width, height int) *BinaryMask {
	return &BinaryMask{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// Foreground сообщает, относится ли пиксель к объекту. Вне маски всегда фон.
func (m *BinaryMask) Foreground(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != 0
}

// Set отмечает пиксель объектом или фоном.
func (m *BinaryMask) Set(x, y int, fg bool) {
	if fg {
		m.Pix[y*m.Width+x] = 255
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

// Count возвращает число пикселей объекта.
func (m *BinaryMask) Count() int {
	n := 0
	for _, p := range m.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// Image возвращает маску как полутоновое изображение для отображения.
func (m *BinaryMask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, p := range m.Pix {
		if p != 0 {
			img.Pix[i] = 255
		}
	}
	return img
}
