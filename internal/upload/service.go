package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedFileType is returned for anything that is not a JPEG or PNG
	ErrUnsupportedFileType = errors.New("unsupported file type, only JPEG and PNG are allowed")
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Service stores uploaded rental pictures on disk and produces the
// public URLs they are served under.
type Service struct {
	dir     string
	baseURL string
}

// NewService creates the upload directory if needed
func NewService(dir, baseURL string) (*Service, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &Service{
		dir:     abs,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// StorePicture saves an uploaded picture under a unique filename and
// returns its public URL. The filename combines a UUID, the current date,
// and the rental name, so collisions are practically impossible and the
// original client filename never reaches the filesystem.
func (s *Service) StorePicture(file multipart.File, header *multipart.FileHeader, name string) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		return "", ErrUnsupportedFileType
	}

	filename := uniqueFilename(header.Filename, name)
	dst := filepath.Join(s.dir, filename)

	// Reject anything that escapes the upload directory
	if filepath.Dir(dst) != s.dir {
		return "", fmt.Errorf("invalid upload path %q", filename)
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return s.baseURL + "/" + filename, nil
}

// Dir returns the absolute path pictures are stored under
func (s *Service) Dir() string {
	return s.dir
}

func uniqueFilename(originalFilename, name string) string {
	ext := filepath.Ext(originalFilename)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s_%s%s", uuid.NewString(), date, sanitizeName(name), ext)
}

// sanitizeName keeps only characters safe for filenames
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "picture"
	}
	return b.String()
}
