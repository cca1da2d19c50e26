package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const defaultPage = 1
const maxUploadMemory = 32 << 20

// parsePage reads the page query parameter; anything unusable falls
// back to the first page (out-of-range values are clamped later by the
// paginator).
func parsePage(r *http.Request) int {
	pageQuery := r.URL.Query().Get("page")
	if pageQuery == "" {
		return defaultPage
	}
	page, err := strconv.Atoi(pageQuery)
	if err != nil {
		return defaultPage
	}
	return page
}

func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

func postIdParam(r *http.Request) (int64, error) {
	return parseIntParam(chi.URLParam(r, "id"), "post id")
}

// parseSubmission parses an url-encoded or multipart form and returns
// the uploaded image header, if any.
func parseSubmission(r *http.Request) (*multipart.FileHeader, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, err
		}
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			return files[0], nil
		}
		return nil, nil
	}
	return nil, r.ParseForm()
}

// safeNext keeps login redirects on-site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
