package vision

import (
	"errors"
	"fmt"

	"fragment-analyzer/internal/domain/port"
)

// Имена доступных реализаций сегментации.
const (
	BackendNative = "native"
	BackendGoCV   = "gocv"
)

// ErrBackendUnavailable возвращается, если реализация не собрана в бинарник.
var ErrBackendUnavailable = errors.New("gocv build tag is not enabled")

// NewSegmenter выбирает реализацию по имени. Пустое имя означает native.
func NewSegmenter(backend string) (port.Segmenter, error) {
	switch backend {
	case "", BackendNative:
		return NewNativeSegmenter(), nil
	case BackendGoCV:
		if !gocvEnabled {
			return nil, ErrBackendUnavailable
		}
		return NewGoCVSegmenter(), nil
	default:
		return nil, fmt.Errorf("unknown segmentation backend %q", backend)
	}
}

var (
	_ port.Segmenter = (*NativeSegmenter)(nil)
	_ port.Segmenter = (*GoCVSegmenter)(nil)
)
