package validation

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	_ "golang.org/x/image/webp"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
)

// CheckImage verifies that the uploaded file actually decodes as an image
// and returns it as a PendingImage with a normalized extension. There is
// no size or format enumeration beyond "is an image".
func CheckImage(fileHeader *multipart.FileHeader) (*domain.PendingImage, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}

	_, format, err := image.DecodeConfig(file)
	if err != nil {
		file.Close()
		return nil, internal_errors.NewValidation("image", "upload a valid image")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, err
	}

	return &domain.PendingImage{Data: file, Ext: extensionFor(format)}, nil
}

func extensionFor(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	default:
		return "." + format
	}
}
