package imageio

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"fragment-analyzer/internal/domain/entity"
	"fragment-analyzer/internal/domain/port"
)

// DefaultExportName имя файла результата по умолчанию.
const DefaultExportName = "fragment_analysis_result.png"

// Loader декодирует фотографии с учётом EXIF-ориентации.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load открывает файл и превращает его в RGBA-буфер.
func (l *Loader) Load(path string) (*entity.ImageBuffer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return toBuffer(img)
}

// Decode читает изображение из потока.
func (l *Loader) Decode(r io.Reader) (*entity.ImageBuffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return toBuffer(img)
}

func toBuffer(img image.Image) (*entity.ImageBuffer, error) {
	buf := entity.NewImageBuffer(img)
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	return buf, nil
}

// FileExporter сохраняет изображения, формат выбирается по расширению.
type FileExporter struct{}

func NewFileExporter() *FileExporter {
	return &FileExporter{}
}

// Save записывает изображение в файл.
func (e *FileExporter) Save(img image.Image, path string) error {
	if img == nil {
		return errors.New("nothing to export")
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Encode пишет PNG в поток.
func (e *FileExporter) Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

var (
	_ port.ImageLoader = (*Loader)(nil)
	_ port.Exporter    = (*FileExporter)(nil)
)
