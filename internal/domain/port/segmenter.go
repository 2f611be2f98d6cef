package port

import (
	"context"

	"fragment-analyzer/internal/domain/entity"
)

// Segmenter интерфейс сегментации изображения
type Segmenter interface {
	// BuildMask строит бинарную маску: серый, размытие, порог, морфология
	BuildMask(ctx context.Context, img *entity.ImageBuffer, cfg entity.Configuration) (*entity.BinaryMask, error)

	// ExtractRegions находит внешние контуры маски с площадью и центром масс
	ExtractRegions(ctx context.Context, mask *entity.BinaryMask) ([]entity.Region, error)
}
