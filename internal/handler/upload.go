package handler

import (
	"mime/multipart"
	"net/http"
	"sort"

	"storeadmin-be/internal/upload"
)

const maxUploadMemory = 10 << 20

// FileStore persists multipart uploads.
type FileStore interface {
	Save(fh *multipart.FileHeader, subdir, prefix string) (upload.Stored, error)
	Remove(publicPath string) error
}

// parseForm accepts multipart and url-encoded bodies alike.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err == http.ErrNotMultipart {
		return r.ParseForm()
	}
	return err
}

// firstFile returns the first uploaded file in field-name order along with
// its field name.
func firstFile(r *http.Request) (string, *multipart.FileHeader) {
	if r.MultipartForm == nil {
		return "", nil
	}

	fields := make([]string, 0, len(r.MultipartForm.File))
	for field, files := range r.MultipartForm.File {
		if len(files) > 0 {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return "", nil
	}
	sort.Strings(fields)

	return fields[0], r.MultipartForm.File[fields[0]][0]
}

// namedFile returns the first file uploaded under field.
func namedFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if files := r.MultipartForm.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}
