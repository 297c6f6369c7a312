package fs

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

// Storage keeps user avatars on the local filesystem. Filenames are random,
// so a stored path never leaks anything about the uploader.
type Storage struct {
	rootPath string
	maxBytes int64
}

func New(rootPath string, maxBytes int64) (*Storage, error) {
	p := filepath.Clean(rootPath)
	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create avatar directory %s: %w", p, err)
	}
	return &Storage{rootPath: p, maxBytes: maxBytes}, nil
}

// SaveAvatar validates and stores an uploaded image, returning the relative
// path to persist on the user row. The reader must contain a decodable
// gif/jpeg/png/webp no larger than maxBytes.
func (s *Storage) SaveAvatar(fileData io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(fileData, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", internal_errors.BadRequest(fmt.Sprintf("Avatar exceeds %d bytes", s.maxBytes))
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", internal_errors.BadRequest("File is not a supported image")
	}

	filename := uuid.NewString() + "." + format
	fullPath := filepath.Join(s.rootPath, filename)

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write avatar file: %w", err)
	}
	return filename, nil
}

// Read opens a stored avatar for streaming back to the client. The path is
// cleaned and anchored under the root so a crafted value cannot escape it.
func (s *Storage) Read(relativePath string) (io.ReadCloser, error) {
	clean := filepath.Clean("/" + relativePath)
	fullPath := filepath.Join(s.rootPath, clean)

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Avatar not found", StatusCode: http.StatusNotFound}
		}
		return nil, fmt.Errorf("failed to open avatar: %w", err)
	}
	return file, nil
}

// Delete removes a stored avatar. A file that is already gone is not an
// error; replacing an avatar calls this for the previous path.
func (s *Storage) Delete(relativePath string) error {
	clean := filepath.Clean("/" + relativePath)
	err := os.Remove(filepath.Join(s.rootPath, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}
