package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"fragment-analyzer/internal/domain/entity"
)

const (
	EnvBlur        = "FRAGMENT_BLUR"
	EnvThreshold   = "FRAGMENT_THRESHOLD"
	EnvMorphSize   = "FRAGMENT_MORPH_SIZE"
	EnvMorphClose  = "FRAGMENT_MORPH_CLOSE"
	EnvMorphOpen   = "FRAGMENT_MORPH_OPEN"
	EnvMinArea     = "FRAGMENT_MIN_AREA"
	EnvUseAdjusted = "FRAGMENT_USE_ADJUSTED"
	EnvNoOriginal  = "FRAGMENT_NO_ORIGINAL"
	EnvWeight      = "FRAGMENT_WEIGHT"
	EnvUnit        = "FRAGMENT_UNIT"
	EnvBackend     = "FRAGMENT_BACKEND"
	EnvLogLevel    = "LOG_LEVEL"
)

type Config struct {
	Backend  string
	LogLevel slog.Level
	Analysis entity.Configuration
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		Backend:  "native",
		LogLevel: slog.LevelInfo,
		Analysis: entity.DefaultConfiguration(),
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		cfg.Backend = strings.ToLower(v)
	}

	var errs []error
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		}
	}

	a := &cfg.Analysis
	errs = append(errs,
		envInt(EnvBlur, &a.BlurRadius),
		envInt(EnvThreshold, &a.BinaryThreshold),
		envInt(EnvMorphSize, &a.MorphKernelSize),
		envInt(EnvMorphClose, &a.CloseIterations),
		envInt(EnvMorphOpen, &a.OpenIterations),
		envFloat(EnvMinArea, &a.MinRegionArea),
		envBool(EnvUseAdjusted, &a.UseAdjustedPercentage),
		envBool(EnvNoOriginal, &a.NoReferenceMode),
	)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	// вес как и в интерфейсе: некорректное значение означает "без веса"
	if v, ok := os.LookupEnv(EnvWeight); ok {
		a.TotalWeight = entity.ParseWeight(v)
	}
	if v, ok := os.LookupEnv(EnvUnit); ok {
		a.WeightUnit = strings.TrimSpace(v)
	}

	cfg.Analysis = cfg.Analysis.Normalize()
	return cfg, nil
}

func envInt(name string, dst *int) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

func envFloat(name string, dst *float64) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

func envBool(name string, dst *bool) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = b
	return nil
}

func lookup(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}
