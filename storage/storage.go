package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/apex/log"
)

// ErrPhotoNotFound is returned for unknown or unsafe photo keys
var ErrPhotoNotFound = errors.New("photo not found")

var extRE = regexp.MustCompile(`^\.[a-zA-Z0-9]+$`)

// PhotoStore saves uploaded photos into a flat managed directory and serves
// them back by key. Keys are generated server-side, so client-supplied names
// never reach the filesystem.
type PhotoStore struct {
	dir string
}

// NewPhotoStore creates the store, creating the directory if absent
func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	log.Infof("Photo store ready at %s", dir)
	return &PhotoStore{dir: dir}, nil
}

// Save writes the photo bytes under a generated key and returns the key.
// The key combines a sortable timestamp with a random hex suffix; only the
// extension of the original filename is kept, defaulting to .jpg.
func (s *PhotoStore) Save(data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !extRE.MatchString(ext) {
		ext = ".jpg"
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate photo key: %w", err)
	}
	key := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102_150405"), hex.EncodeToString(suffix), ext)

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write photo %s: %w", key, err)
	}
	return key, nil
}

// Read returns the stored bytes for a key. Anything that is not a bare
// filename inside the managed directory is treated as not found.
func (s *PhotoStore) Read(key string) ([]byte, error) {
	if key == "" || key != filepath.Base(key) || strings.Contains(key, "..") {
		return nil, ErrPhotoNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to read photo %s: %w", key, err)
	}
	return data, nil
}

// DetectImageType detects the content type of image data from its signature
func DetectImageType(data []byte) string {
	contentType := "image/jpeg" // default
	if len(data) > 4 {
		if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
			contentType = "image/png"
		} else if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 {
			contentType = "image/gif"
		} else if data[0] == 0x42 && data[1] == 0x4D {
			contentType = "image/bmp"
		} else if data[0] == 0xFF && data[1] == 0xD8 {
			contentType = "image/jpeg"
		}
	}
	return contentType
}
