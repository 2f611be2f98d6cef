package app

import (
	"context"
	"image"
	"io"
	"log/slog"

	"fragment-analyzer/internal/domain/entity"
)

func rectRegion(x, y, w, h int) entity.Region {
	return entity.NewRegion([]image.Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}})
}

// threeRegions квадрат 90000 и две области 9000 и 4500.
func threeRegions() []entity.Region {
	return []entity.Region{
		rectRegion(0, 0, 300, 300),
		rectRegion(400, 0, 90, 100),
		rectRegion(600, 0, 45, 100),
	}
}

func weight(v float64) *float64 {
	return &v
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smallImage() *entity.ImageBuffer {
	return entity.NewImageBuffer(image.NewRGBA(image.Rect(0, 0, 4, 4)))
}

type fakeSegmenter struct {
	regions []entity.Region
	err     error
	calls   int
}

func (f *fakeSegmenter) BuildMask(ctx context.Context, img *entity.ImageBuffer, cfg entity.Configuration) (*entity.BinaryMask, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return entity.NewBinaryMask(img.Width, img.Height), nil
}

func (f *fakeSegmenter) ExtractRegions(ctx context.Context, mask *entity.BinaryMask) ([]entity.Region, error) {
	return f.regions, nil
}
