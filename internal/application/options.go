package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fragment-analyzer/internal/domain/entity"
)

// Имена параметров, которые принимает интерфейс управления.
const (
	OptionBlur        = "blur"
	OptionThreshold   = "threshold"
	OptionMorphSize   = "morphSize"
	OptionMorphClose  = "morphClose"
	OptionMorphOpen   = "morphOpen"
	OptionMinArea     = "minArea"
	OptionUseAdjusted = "useAdjusted"
	OptionNoOriginal  = "noOriginal"
	OptionWeight      = "weight"
	OptionUnit        = "unit"
)

var (
	// ErrUnknownOption неизвестное имя параметра.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidOption значение параметра не разобрано.
	ErrInvalidOption = errors.New("invalid option value")
)

// OptionNames возвращает имена параметров в порядке отображения.
func OptionNames() []string {
	return []string{
		OptionBlur, OptionThreshold, OptionMorphSize, OptionMorphClose, OptionMorphOpen,
		OptionMinArea, OptionUseAdjusted, OptionNoOriginal, OptionWeight, OptionUnit,
	}
}

// ApplyOption возвращает конфигурацию с изменённым параметром.
// Размытие и размер ядра приводятся к нечётным, как это делают ползунки.
// Вес разбирается как свободный текст: некорректный ввод просто снимает вес.
func ApplyOption(cfg entity.Configuration, name, value string) (entity.Configuration, error) {
	value = strings.TrimSpace(value)
	var err error
	switch name {
	case OptionBlur:
		var v int
		if v, err = strconv.Atoi(value); err == nil {
			cfg.BlurRadius = entity.MakeOdd(v)
		}
	case OptionThreshold:
		cfg.BinaryThreshold, err = strconv.Atoi(value)
	case OptionMorphSize:
		var v int
		if v, err = strconv.Atoi(value); err == nil {
			cfg.MorphKernelSize = entity.MakeOdd(v)
		}
	case OptionMorphClose:
		cfg.CloseIterations, err = strconv.Atoi(value)
	case OptionMorphOpen:
		cfg.OpenIterations, err = strconv.Atoi(value)
	case OptionMinArea:
		cfg.MinRegionArea, err = strconv.ParseFloat(value, 64)
	case OptionUseAdjusted:
		cfg.UseAdjustedPercentage, err = parseSwitch(value)
	case OptionNoOriginal:
		cfg.NoReferenceMode, err = parseSwitch(value)
	case OptionWeight:
		cfg.TotalWeight = entity.ParseWeight(value)
	case OptionUnit:
		cfg.WeightUnit = value
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	if err != nil {
		return cfg, fmt.Errorf("%w %q for %s", ErrInvalidOption, value, name)
	}
	return cfg.Normalize(), nil
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(value)
}

// OptionValue текущее значение параметра в том виде, в каком его принимает ApplyOption.
func OptionValue(cfg entity.Configuration, name string) string {
	switch name {
	case OptionBlur:
		return strconv.Itoa(cfg.BlurRadius)
	case OptionThreshold:
		return strconv.Itoa(cfg.BinaryThreshold)
	case OptionMorphSize:
		return strconv.Itoa(cfg.MorphKernelSize)
	case OptionMorphClose:
		return strconv.Itoa(cfg.CloseIterations)
	case OptionMorphOpen:
		return strconv.Itoa(cfg.OpenIterations)
	case OptionMinArea:
		return strconv.FormatFloat(cfg.MinRegionArea, 'f', -1, 64)
	case OptionUseAdjusted:
		return strconv.FormatBool(cfg.UseAdjustedPercentage)
	case OptionNoOriginal:
		return strconv.FormatBool(cfg.NoReferenceMode)
	case OptionWeight:
		if !cfg.HasWeight() {
			return ""
		}
		return strconv.FormatFloat(cfg.Weight(), 'f', -1, 64)
	case OptionUnit:
		return cfg.WeightUnit
	}
	return ""
}
