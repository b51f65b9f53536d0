package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem guarda los blobs como archivos bajo root.
type Filesystem struct {
	root string
}

// NewFilesystem crea root si no existe.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "./exports"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Filesystem{root: root}, nil
}

func (f *Filesystem) Driver() string { return DriverFilesystem }

// sanitizeKey impide claves vacías, absolutas o que escapen de root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("clave vacía")
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("clave inválida %q", key)
	}
	return filepath.FromSlash(filepath.ToSlash(filepath.Clean(key))), nil
}

// Put escribe a un temporal y lo renombra; una clave existente no se sobrescribe.
func (f *Filesystem) Put(_ context.Context, key string, r io.Reader, _ string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	dst := filepath.Join(f.root, k)
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("blob %s ya existe", key)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
