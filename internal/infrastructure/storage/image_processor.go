package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	DefaultMaxImageSize = 5 * 1024 * 1024
	ProfileImageSize    = 512
)

// ErrInvalidImage is wrapped by every rejection from ValidateImage.
var ErrInvalidImage = errors.New("invalid image")

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateImage accepts JPEG and PNG up to MaxSize.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: exceeds %d bytes", ErrInvalidImage, p.MaxSize)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("%w: format %s not allowed (only jpeg/png)", ErrInvalidImage, format)
	}
}

// NormalizeProfile fits the image in a ProfileImageSize square and re-encodes
// it as JPEG quality 90. Smaller images are not upscaled.
func (p *ImageProcessor) NormalizeProfile(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode: %v", ErrInvalidImage, err)
	}

	resized := imaging.Fit(img, ProfileImageSize, ProfileImageSize, imaging.Lanczos)
	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode jpeg: %w", err)
	}
	return b.Bytes(), nil
}
