package port

import (
	"image"

	"fragment-analyzer/internal/domain/entity"
)

// ImageLoader загружает и декодирует фотографию
type ImageLoader interface {
	Load(path string) (*entity.ImageBuffer, error)
}

// OverlayRenderer рисует контуры и подписи поверх исходного изображения
type OverlayRenderer interface {
	Render(img *entity.ImageBuffer, overlays []entity.Overlay) (*image.RGBA, error)
}

// Exporter сохраняет готовое изображение в файл
type Exporter interface {
	Save(img image.Image, path string) error
}
