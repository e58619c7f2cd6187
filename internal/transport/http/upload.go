package http

import (
	"errors"
	"io"
	"net/http"

	apierrors "energyforecast/internal/errors"
)

// multipartMemory is how much of a multipart form is kept in memory before
// spilling to temporary files
const multipartMemory = 8 << 20

// upload is one file taken from a multipart form
type upload struct {
	io.ReadCloser
	Filename string
}

// readUpload returns the file posted under field. A missing or empty field
// yields apierrors.ErrNoFile.
func readUpload(r *http.Request, field string) (*upload, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, apierrors.ErrNoFile
		}
		return nil, apierrors.InvalidRequestWithError(err)
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, apierrors.ErrNoFile
	}
	if err != nil {
		return nil, apierrors.InvalidRequestWithError(err)
	}
	if header.Filename == "" {
		file.Close()
		return nil, apierrors.ErrNoFile
	}

	return &upload{ReadCloser: file, Filename: header.Filename}, nil
}
