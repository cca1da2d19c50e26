package validation

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/postline-dev/postline/internal/errors"
)

// uploadRequest builds a multipart request with a single "image" file field.
func uploadRequest(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/create/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestCheckImage(t *testing.T) {
	t.Run("valid png", func(t *testing.T) {
		fh := uploadRequest(t, "small.png", pngBytes(t))

		pending, err := CheckImage(fh)
		require.NoError(t, err)
		assert.Equal(t, ".png", pending.Ext)

		// data must be readable from the start after the decode probe
		data, err := io.ReadAll(pending.Data)
		require.NoError(t, err)
		assert.Equal(t, pngBytes(t), data)
	})

	t.Run("non-image rejected", func(t *testing.T) {
		fh := uploadRequest(t, "notes.txt", []byte("just text, not pixels"))

		_, err := CheckImage(fh)
		ve := internal_errors.AsValidation(err)
		require.NotNil(t, ve)
		assert.Contains(t, ve.Fields, "image")
	})
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("jpeg"))
	assert.Equal(t, ".png", extensionFor("png"))
	assert.Equal(t, ".gif", extensionFor("gif"))
	assert.Equal(t, ".webp", extensionFor("webp"))
}
