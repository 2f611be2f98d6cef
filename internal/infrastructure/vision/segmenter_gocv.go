//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"fragment-analyzer/internal/domain/entity"
)

const gocvEnabled = true

// GoCVSegmenter сегментация средствами OpenCV.
type GoCVSegmenter struct{}

// NewGoCVSegmenter создаёт сегментатор на OpenCV.
func NewGoCVSegmenter() *GoCVSegmenter {
	return &GoCVSegmenter{}
}

// BuildMask строит бинарную маску: серый, Гаусс, порог, закрытие и открытие.
func (s *GoCVSegmenter) BuildMask(ctx context.Context, img *entity.ImageBuffer, cfg entity.Configuration) (*entity.BinaryMask, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalize()

	src, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC4, img.Pix)
	if err != nil {
		return nil, fmt.Errorf("wrap image: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBAToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(cfg.BlurRadius, cfg.BlurRadius), 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, float32(cfg.BinaryThreshold), 255, gocv.ThresholdBinary)

	if cfg.MorphKernelSize > 0 {
		kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(cfg.MorphKernelSize, cfg.MorphKernelSize))
		defer kernel.Close()

		if cfg.CloseIterations > 0 {
			gocv.MorphologyExWithParams(binary, &binary, gocv.MorphClose, kernel, cfg.CloseIterations, gocv.BorderConstant)
		}
		if cfg.OpenIterations > 0 {
			gocv.MorphologyExWithParams(binary, &binary, gocv.MorphOpen, kernel, cfg.OpenIterations, gocv.BorderConstant)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask := entity.NewBinaryMask(img.Width, img.Height)
	copy(mask.Pix, binary.ToBytes())
	return mask, nil
}

// ExtractRegions ищет внешние контуры через FindContours.
func (s *GoCVSegmenter) ExtractRegions(ctx context.Context, mask *entity.BinaryMask) ([]entity.Region, error) {
	if err := checkMask(mask); err != nil {
		return nil, err
	}

	mat, err := gocv.NewMatFromBytes(mask.Height, mask.Width, gocv.MatTypeCV8UC1, mask.Pix)
	if err != nil {
		return nil, fmt.Errorf("wrap mask: %w", err)
	}
	defer mat.Close()

	contours := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	regions := make([]entity.Region, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		region := entity.NewRegion(c.ToPoints())
		region.Area = gocv.ContourArea(c)
		regions = append(regions, region)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return regions, nil
}
