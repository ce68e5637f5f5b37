package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// Storage saves uploaded files and returns a stable reference path.
type Storage interface {
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)
	DeleteFile(filePath string) error
}

// LocalStorage stores files on the local filesystem, used for question and
// option images.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new LocalStorage rooted at basePath. baseURL, when
// set, is prepended to returned reference paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath, baseURL: baseURL}, nil
}

// SaveFile stores an uploaded file under the given subdirectory and returns
// its reference path. A nil fileHeader is not an error; it returns an empty
// path.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := ls.basePath
	if subPath != "" {
		dir = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Unique name to avoid collisions between uploads
	name := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	ref := filepath.ToSlash(filepath.Join("uploads", subPath, name))
	if ls.baseURL != "" {
		ref = strings.TrimRight(ls.baseURL, "/") + "/" + filepath.ToSlash(filepath.Join(subPath, name))
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("ref", ref).Msg("File saved")
	return ref, nil
}

// DeleteFile removes a stored file. Missing files are not an error.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	rel := filePath
	if ls.baseURL != "" {
		rel = strings.TrimPrefix(rel, strings.TrimRight(ls.baseURL, "/")+"/")
	}
	rel = strings.TrimPrefix(rel, "uploads/")

	full := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", full, err)
	}
	return nil
}
