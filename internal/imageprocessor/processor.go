package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultAvatarSize - сторона квадратного аватара в пикселях
const DefaultAvatarSize = 256

// Result - обработанное изображение
type Result struct {
	Data        *bytes.Buffer
	Format      string // jpeg или png
	ContentType string
	Extension   string
}

// Processor приводит фото участников и тренеров к квадратным аватарам
type Processor struct {
	quality int // JPEG quality (1-100)
	size    int
}

func NewProcessor(quality, size int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if size <= 0 {
		size = DefaultAvatarSize
	}
	return &Processor{quality: quality, size: size}
}

// Avatar декодирует изображение, обрезает по центру до квадрата и уменьшает.
// PNG остается PNG (прозрачность), остальные форматы кодируются в JPEG.
func (p *Processor) Avatar(reader io.Reader) (*Result, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := p.squareThumbnail(img)

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, thumb); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		return &Result{Data: &buf, Format: "png", ContentType: "image/png", Extension: ".png"}, nil
	}

	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return &Result{Data: &buf, Format: "jpeg", ContentType: "image/jpeg", Extension: ".jpg"}, nil
}

func (p *Processor) squareThumbnail(img image.Image) image.Image {
	crop := centerSquare(img.Bounds())

	// маленькие картинки не растягиваем
	side := p.size
	if crop.Dx() < side {
		side = crop.Dx()
	}

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)
	return dst
}

func centerSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w == h {
		return b
	}
	if w > h {
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	}
	off := (h - w) / 2
	return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
}

// IsValidImage checks if the reader contains a valid image
func IsValidImage(reader io.Reader) bool {
	_, _, err := image.DecodeConfig(reader)
	return err == nil
}
