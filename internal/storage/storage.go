// Package storage persists uploaded files on local disk under a
// per-kind subdirectory and serves them back over the uploads route.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedExtensions is the upload allowlist: documents and images.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// StoredFile describes a persisted upload. Path is relative to the
// public uploads route, OriginalName is the client's filename.
type StoredFile struct {
	Path         string
	OriginalName string
	Size         int64
}

// Store writes uploads under BaseDir/<kind>/ with collision-free names.
type Store struct {
	baseDir    string
	publicPath string
	maxSize    int64
	logger     *slog.Logger
}

func NewStore(baseDir, publicPath string, maxSize int64, logger *slog.Logger) *Store {
	return &Store{
		baseDir:    baseDir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		maxSize:    maxSize,
		logger:     logger,
	}
}

func (s *Store) BaseDir() string { return s.baseDir }

// Save persists one multipart file under the given kind subdirectory.
// The stored name is a timestamp plus random suffix so concurrent
// uploads of identically named files never collide.
func (s *Store) Save(kind string, fileHeader *multipart.FileHeader) (*StoredFile, error) {
	if fileHeader.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedType
	}

	dir := filepath.Join(s.baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomSuffix(), ext)
	dst := filepath.Join(dir, name)

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if written > s.maxSize {
		os.Remove(dst)
		return nil, ErrFileTooLarge
	}

	s.logger.Info("stored upload", "kind", kind, "name", name, "size", written)

	return &StoredFile{
		Path:         path.Join(s.publicPath, kind, name),
		OriginalName: fileHeader.Filename,
		Size:         written,
	}, nil
}

// AbsoluteURL rewrites a stored relative path into a URL the client can
// fetch, using the scheme and host the request arrived on. Already
// absolute paths pass through untouched.
func AbsoluteURL(r *http.Request, storedPath string) string {
	if storedPath == "" ||
		strings.HasPrefix(storedPath, "http://") ||
		strings.HasPrefix(storedPath, "https://") {
		return storedPath
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	if !strings.HasPrefix(storedPath, "/") {
		storedPath = "/" + storedPath
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, storedPath)
}

func randomSuffix() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000)
	}
	return hex.EncodeToString(b)
}
