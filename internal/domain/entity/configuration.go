package entity

import (
	"math"
	"strconv"
	"strings"
)

// Значения по умолчанию для элементов управления.
const (
	DefaultBlurRadius      = 5
	DefaultBinaryThreshold = 180
	DefaultMorphKernelSize = 7
	DefaultCloseIterations = 3
	DefaultOpenIterations  = 2
	DefaultMinRegionArea   = 5000
)

// Configuration неизменяемый снимок параметров анализа.
type Configuration struct {
	BlurRadius            int      // размер ядра размытия (нечётный, ≥1)
	BinaryThreshold       int      // порог бинаризации 0..255
	MorphKernelSize       int      // размер структурного элемента (нечётный, ≥0)
	CloseIterations       int      // итерации закрытия
	OpenIterations        int      // итерации открытия
	MinRegionArea         float64  // минимальная площадь области в пикселях
	UseAdjustedPercentage bool     // проценты от суммарной площади фрагментов
	NoReferenceMode       bool     // режим без эталона
	TotalWeight           *float64 // общий вес для распределения, nil если не задан
	WeightUnit            string   // подпись единицы, только для отображения
}

// DefaultConfiguration возвращает конфигурацию с начальными значениями.
func DefaultConfiguration() Configuration {
	return Configuration{
		BlurRadius:            DefaultBlurRadius,
		BinaryThreshold:       DefaultBinaryThreshold,
		MorphKernelSize:       DefaultMorphKernelSize,
		CloseIterations:       DefaultCloseIterations,
		OpenIterations:        DefaultOpenIterations,
		MinRegionArea:         DefaultMinRegionArea,
		UseAdjustedPercentage: true,
	}
}

// Normalize возвращает копию, приведённую к допустимым диапазонам.
// Размер размытия и морфологического ядра всегда нечётные: чётное v становится v+1.
func (c Configuration) Normalize() Configuration {
	n := c
	if n.BlurRadius < 1 {
		n.BlurRadius = 1
	}
	n.BlurRadius = MakeOdd(n.BlurRadius)

	n.BinaryThreshold = clampInt(n.BinaryThreshold, 0, 255)

	if n.MorphKernelSize < 0 {
		n.MorphKernelSize = 0
	}
	n.MorphKernelSize = MakeOdd(n.MorphKernelSize)

	if n.CloseIterations < 0 {
		n.CloseIterations = 0
	}
	if n.OpenIterations < 0 {
		n.OpenIterations = 0
	}
	if n.MinRegionArea < 0 || math.IsNaN(n.MinRegionArea) {
		n.MinRegionArea = 0
	}

	if n.TotalWeight != nil {
		w := *n.TotalWeight
		if validWeight(w) {
			n.TotalWeight = &w
		} else {
			n.TotalWeight = nil
		}
	}
	return n
}

// HasWeight сообщает, задан ли корректный положительный общий вес.
func (c Configuration) HasWeight() bool {
	return c.TotalWeight != nil && validWeight(*c.TotalWeight)
}

// Weight возвращает общий вес или 0, если он не задан.
func (c Configuration) Weight() float64 {
	if !c.HasWeight() {
		return 0
	}
	return *c.TotalWeight
}

// FormatValue форматирует число с заданной точностью и подписью единицы.
func (c Configuration) FormatValue(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if c.WeightUnit != "" {
		s += " " + c.WeightUnit
	}
	return s
}

// ParseWeight разбирает введённый текст веса. Пустой или некорректный ввод
// не является ошибкой: вес просто не задаётся.
func ParseWeight(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || !validWeight(v) {
		return nil
	}
	return &v
}

// MakeOdd превращает чётное значение в следующее нечётное.
func MakeOdd(v int) int {
	if v%2 == 0 {
		return v + 1
	}
	return v
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w > 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
