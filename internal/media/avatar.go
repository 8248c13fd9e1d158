// Package media stores uploaded avatars on local disk under media.root.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Jam721/VkWebHomework/config"
)

var (
	ErrUnsupportedType = errors.New("avatar must be a jpg, png, gif or webp image")
	ErrTooLarge        = errors.New("avatar file is too large")
)

const avatarDir = "avatars"

var allowedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type Storage struct {
	root     string
	url      string
	maxBytes int64
}

func NewStorage(root, url string, maxBytes int64) *Storage {
	return &Storage{root: root, url: strings.TrimRight(url, "/"), maxBytes: maxBytes}
}

func FromConfig(conf *config.AppConfig) *Storage {
	return NewStorage(conf.Media.Root, conf.Media.URL, conf.Media.MaxAvatarBytes)
}

func (s *Storage) Root() string { return s.root }

func (s *Storage) URLPrefix() string { return s.url }

// SaveAvatar writes the upload to avatars/<uuid><ext> and returns that relative path.
func (s *Storage) SaveAvatar(fh *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	wantType, ok := allowedTypes[ext]
	if !ok {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if http.DetectContentType(head[:n]) != wantType {
		return "", ErrUnsupportedType
	}

	if err := os.MkdirAll(filepath.Join(s.root, avatarDir), 0755); err != nil {
		return "", fmt.Errorf("create avatar dir: %w", err)
	}

	rel := path.Join(avatarDir, uuid.NewString()+ext)
	body := io.MultiReader(bytes.NewReader(head[:n]), src)
	if err := writeFile(filepath.Join(s.root, filepath.FromSlash(rel)), body); err != nil {
		return "", err
	}
	return rel, nil
}

// writeFile copies r into a new file at name. On failure the partial file is removed.
func writeFile(name string, r io.Reader) error {
	dst, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create avatar file: %w", err)
	}
	_, err = io.Copy(dst, r)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("write avatar: %w", err)
	}
	return nil
}

// Remove deletes a stored file; a missing file is not an error.
func (s *Storage) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// URL returns the public URL of a stored file, or "" when rel is nil.
func (s *Storage) URL(rel *string) string {
	return URL(s.url, rel)
}

func URL(prefix string, rel *string) string {
	if rel == nil || *rel == "" {
		return ""
	}
	return strings.TrimRight(prefix, "/") + "/" + *rel
}
