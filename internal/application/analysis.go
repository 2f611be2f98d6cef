package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fragment-analyzer/internal/domain/entity"
	"fragment-analyzer/internal/domain/port"
)

// ErrNoSegmenter возвращается, если сервис собран без сегментатора.
var ErrNoSegmenter = errors.New("segmenter is not configured")

// AnalysisService прогоняет полный конвейер анализа одного изображения.
type AnalysisService struct {
	segmenter port.Segmenter
	logger    *slog.Logger
}

// NewAnalysisService создаёт сервис анализа.
func NewAnalysisService(segmenter port.Segmenter, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{segmenter: segmenter, logger: logger}
}

// Analyze строит маску, находит области, классифицирует и измеряет их.
// Ошибка любого шага прерывает весь прогон, частичный результат не возвращается.
func (s *AnalysisService) Analyze(ctx context.Context, img *entity.ImageBuffer, cfg entity.Configuration) (*entity.AnalysisResult, error) {
	if s.segmenter == nil {
		return nil, ErrNoSegmenter
	}
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("validate image: %w", err)
	}

	cfg = cfg.Normalize()
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID)
	started := time.Now()

	mask, err := s.segmenter.BuildMask(ctx, img, cfg)
	if err != nil {
		log.Error("build mask failed", "err", err)
		return nil, fmt.Errorf("build mask: %w", err)
	}

	regions, err := s.segmenter.ExtractRegions(ctx, mask)
	if err != nil {
		log.Error("extract regions failed", "err", err)
		return nil, fmt.Errorf("extract regions: %w", err)
	}

	set := Classify(regions, cfg)
	fragments, total := Measure(set, cfg)

	result := &entity.AnalysisResult{
		RunID:             runID,
		Config:            cfg,
		Mask:              mask,
		RegionCount:       len(regions),
		Classified:        set,
		Fragments:         fragments,
		TotalFragmentArea: total,
	}
	result.Report = FormatReport(result)
	result.Overlays = BuildOverlays(result)

	log.Info("analysis finished",
		"width", img.Width,
		"height", img.Height,
		"regions", len(regions),
		"fragments", len(fragments),
		"reference", set.Reference != nil,
		"duration", time.Since(started),
	)
	return result, nil
}
