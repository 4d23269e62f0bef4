package imscc

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Archive is an extracted IMSCC cartridge on disk. It hands out file
// contents keyed by cartridge-relative path; all conversion stages read
// through it so nothing else touches the filesystem.
type Archive struct {
	base string
}

// Open extracts the cartridge at path into a temp dir.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Extract(f, info.Size())
}

// Extract unzips a cartridge into a temp dir and returns the archive over it.
func Extract(r io.ReaderAt, size int64) (*Archive, error) {
	tmp, err := os.MkdirTemp("", "imscc-*")
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(r, size)
	if err != nil {
		os.RemoveAll(tmp)
		return nil, fmt.Errorf("open cartridge: %w", err)
	}
	for _, f := range zr.File {
		if err := writeEntry(tmp, f); err != nil {
			os.RemoveAll(tmp)
			return nil, err
		}
	}
	return &Archive{base: tmp}, nil
}

func writeEntry(base string, f *zip.File) error {
	rel := filepath.Clean(f.Name)
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("cartridge entry escapes archive: %s", f.Name)
	}
	dst := filepath.Join(base, rel)
	if f.FileInfo().IsDir() {
		return os.MkdirAll(dst, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ReadFile returns the contents of a cartridge-relative file.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(a.base, filepath.Clean(name)))
}

// Close removes the extracted tree.
func (a *Archive) Close() error {
	return os.RemoveAll(a.base)
}
