package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path uploaded files are served under.
const PublicPrefix = "/uploads/"

var ErrOutsideRoot = errors.New("path escapes upload directory")

type Stored struct {
	FileName   string
	PublicPath string
}

// DiskStore keeps uploaded files under a root directory.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "logo"), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Root() string { return s.root }

// Save copies fh into subdir (may be empty) as <prefix>-<uuid><ext>, or
// <uuid><ext> when prefix is empty.
func (s *DiskStore) Save(fh *multipart.FileHeader, subdir, prefix string) (Stored, error) {
	src, err := fh.Open()
	if err != nil {
		return Stored{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + extension(fh.Filename)
	if prefix != "" {
		name = prefix + "-" + name
	}

	dir := filepath.Join(s.root, filepath.Clean("/"+subdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Stored{}, fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Stored{}, fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return Stored{}, fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return Stored{}, fmt.Errorf("write file: %w", err)
	}

	return Stored{
		FileName:   name,
		PublicPath: PublicPrefix + path.Join(strings.Trim(subdir, "/"), name),
	}, nil
}

// Remove deletes the file behind a public path. Files already gone are not
// an error.
func (s *DiskStore) Remove(publicPath string) error {
	p, err := s.Resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Resolve maps a public path (or a bare name relative to the root) onto the
// filesystem.
func (s *DiskStore) Resolve(publicPath string) (string, error) {
	rel := strings.TrimPrefix(publicPath, PublicPrefix)
	rel = strings.TrimLeft(rel, "/")
	if rel == "" {
		return "", ErrOutsideRoot
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return filepath.Join(s.root, clean), nil
}

func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 10 {
		return ""
	}
	return ext
}
