package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"fragment-analyzer/config"
	console "fragment-analyzer/internal/api"
	"fragment-analyzer/internal/container"
	"fragment-analyzer/internal/domain/entity"
	"fragment-analyzer/internal/infrastructure/imageio"
	"fragment-analyzer/internal/infrastructure/render"
	"fragment-analyzer/internal/infrastructure/storage"
	"fragment-analyzer/internal/infrastructure/vision"
)

type options struct {
	image       string
	out         string
	mask        string
	interactive bool
	backend     string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := parseFlags(cfg)
	if opts.image == "" && !opts.interactive {
		flag.Usage()
		os.Exit(2)
	}

	logger := NewLogger(cfg.LogLevel)

	segmenter, err := vision.NewSegmenter(opts.backend)
	if err != nil {
		logger.Error("create segmenter", "backend", opts.backend, "err", err)
		os.Exit(1)
	}

	// Собираем сервисы приложения
	appContainer := container.New(
		storage.NewMemorySessionRepository(),
		segmenter,
		imageio.NewLoader(),
		render.NewRenderer(),
		imageio.NewFileExporter(),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.interactive {
		err = runConsole(ctx, appContainer, cfg.Analysis, opts, logger)
	} else {
		err = runOnce(ctx, appContainer, cfg.Analysis, opts)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("fragment analysis failed", "err", err)
		stop()
		os.Exit(1)
	}
}

// parseFlags переопределяет параметры из окружения флагами командной строки.
func parseFlags(cfg *config.Config) options {
	opts := options{backend: cfg.Backend}
	a := &cfg.Analysis

	flag.StringVar(&opts.image, "image", "", "image to analyze")
	flag.StringVar(&opts.out, "out", "", "save the image with outlines and labels to this path")
	flag.StringVar(&opts.mask, "mask", "", "save the binary mask to this path")
	flag.BoolVar(&opts.interactive, "interactive", false, "run the interactive console")
	flag.StringVar(&opts.backend, "backend", opts.backend, "segmentation backend: native or gocv")

	flag.IntVar(&a.BlurRadius, "blur", a.BlurRadius, "gaussian blur kernel size, odd")
	flag.IntVar(&a.BinaryThreshold, "threshold", a.BinaryThreshold, "binary threshold 0..255")
	flag.IntVar(&a.MorphKernelSize, "morph-size", a.MorphKernelSize, "morphology kernel size, odd")
	flag.IntVar(&a.CloseIterations, "morph-close", a.CloseIterations, "close iterations")
	flag.IntVar(&a.OpenIterations, "morph-open", a.OpenIterations, "open iterations")
	flag.Float64Var(&a.MinRegionArea, "min-area", a.MinRegionArea, "minimum region area in pixels")
	flag.BoolVar(&a.UseAdjustedPercentage, "adjusted", a.UseAdjustedPercentage, "show adjusted percentages")
	flag.BoolVar(&a.NoReferenceMode, "no-original", a.NoReferenceMode, "treat all pieces as fragments")
	flag.Func("weight", "total weight or value to distribute", func(v string) error {
		a.TotalWeight = entity.ParseWeight(v)
		return nil
	})
	flag.StringVar(&a.WeightUnit, "unit", a.WeightUnit, "unit label for weights")

	flag.Parse()
	cfg.Analysis = cfg.Analysis.Normalize()
	return opts
}

func runConsole(ctx context.Context, c *container.Container, initial entity.Configuration, opts options, logger *slog.Logger) error {
	con := console.New(c, initial, logger)
	if opts.image != "" {
		con.HandleLine(ctx, os.Stdout, "load "+opts.image)
	}
	return con.Run(ctx, os.Stdin, os.Stdout)
}

// runOnce анализирует одно изображение, печатает отчёт и сохраняет файлы.
func runOnce(ctx context.Context, c *container.Container, cfg entity.Configuration, opts options) error {
	img, err := c.Loader.Load(opts.image)
	if err != nil {
		return err
	}
	result, err := c.AnalysisService.Analyze(ctx, img, cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, result.Report)

	if opts.out != "" {
		rendered, err := c.Renderer.Render(img, result.Overlays)
		if err != nil {
			return fmt.Errorf("render overlays: %w", err)
		}
		if err := c.Exporter.Save(rendered, opts.out); err != nil {
			return err
		}
	}
	if opts.mask != "" {
		if err := c.Exporter.Save(result.Mask.Image(), opts.mask); err != nil {
			return err
		}
	}
	return nil
}
