package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

var keyRE = regexp.MustCompile(`^\d{8}_\d{6}_[0-9a-f]{8}\.[a-z0-9]+$`)

func TestSaveAndRead(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore: %v", err)
	}

	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	key, err := store.Save(data, "street.jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !keyRE.MatchString(key) {
		t.Errorf("Save: key %q does not match expected format", key)
	}
	if filepath.Ext(key) != ".jpeg" {
		t.Errorf("Save: expected .jpeg extension, got %q", filepath.Ext(key))
	}

	got, err := store.Read(key)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Read: stored bytes differ from input")
	}
}

func TestSaveExtensionFallback(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore: %v", err)
	}

	tests := []struct {
		name         string
		originalName string
	}{
		{"no extension", "photo"},
		{"empty name", ""},
		{"unsafe extension", "photo.p?g"},
		{"traversal name", "../../etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := store.Save([]byte("x"), tt.originalName)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if filepath.Ext(key) != ".jpg" {
				t.Errorf("expected .jpg fallback for %q, got key %q", tt.originalName, key)
			}
			if key != filepath.Base(key) {
				t.Errorf("key %q escapes the managed directory", key)
			}
		})
	}
}

func TestReadRejectsUnsafeKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPhotoStore(dir)
	if err != nil {
		t.Fatalf("NewPhotoStore: %v", err)
	}

	// A file outside the managed dir that a traversal key would reach.
	outside := filepath.Join(dir, "..", "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []string{
		"",
		"../secret.txt",
		"..",
		"sub/photo.jpg",
		"/etc/passwd",
	}

	for _, key := range tests {
		if _, err := store.Read(key); !errors.Is(err, ErrPhotoNotFound) {
			t.Errorf("Read(%q): expected ErrPhotoNotFound, got %v", key, err)
		}
	}
}

func TestReadUnknownKey(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore: %v", err)
	}
	if _, err := store.Read("20250314_103000_deadbeef.jpg"); !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("Read: expected ErrPhotoNotFound, got %v", err)
	}
}

func TestDetectImageType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}, "image/png"},
		{"gif", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, "image/gif"},
		{"bmp", []byte{0x42, 0x4D, 0x00, 0x00, 0x00, 0x00}, "image/bmp"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, "image/jpeg"},
		{"unknown defaults to jpeg", []byte{0x00, 0x01, 0x02, 0x03, 0x04}, "image/jpeg"},
		{"short data defaults to jpeg", []byte{0x89}, "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectImageType(tt.data); got != tt.expected {
				t.Errorf("DetectImageType: expected %s, got %s", tt.expected, got)
			}
		})
	}
}
