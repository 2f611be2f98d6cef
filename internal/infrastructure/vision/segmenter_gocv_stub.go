//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"fragment-analyzer/internal/domain/entity"
)

const gocvEnabled = false

// GoCVSegmenter заглушка для сборки без OpenCV.
type GoCVSegmenter struct{}

// NewGoCVSegmenter создаёт сегментатор-заглушку (без OpenCV).
func NewGoCVSegmenter() *GoCVSegmenter {
	return &GoCVSegmenter{}
}

// BuildMask возвращает ошибку, если сборка без тега gocv.
func (s *GoCVSegmenter) BuildMask(ctx context.Context, img *entity.ImageBuffer, cfg entity.Configuration) (*entity.BinaryMask, error) {
	_ = ctx
	_ = img
	_ = cfg
	return nil, ErrBackendUnavailable
}

// ExtractRegions возвращает ошибку, если сборка без тега gocv.
func (s *GoCVSegmenter) ExtractRegions(ctx context.Context, mask *entity.BinaryMask) ([]entity.Region, error) {
	_ = ctx
	_ = mask
	return nil, ErrBackendUnavailable
}
