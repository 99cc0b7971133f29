package utils

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StagedFile is a request-scoped local copy of an uploaded file. It must be
// removed before the request completes, on success and failure alike.
type StagedFile struct {
	Path         string
	Field        string
	OriginalName string
}

// StageUpload saves the multipart file part named field into dir under a
// random filename. Returns (nil, nil) when the request carries no such part.
func StageUpload(c *gin.Context, field, dir string) (*StagedFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dst := filepath.Join(dir, uuid.NewString()+filepath.Ext(header.Filename))
	if err := c.SaveUploadedFile(header, dst); err != nil {
		return nil, err
	}

	return &StagedFile{
		Path:         dst,
		Field:        field,
		OriginalName: header.Filename,
	}, nil
}

// Remove deletes the staged copy. Removing an already-removed file is not
// an error.
func (f *StagedFile) Remove() error {
	if f == nil {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
