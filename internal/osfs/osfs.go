// Package osfs adapts the host filesystem to the absfs.FileSystem
// interface fileseal's Sealer expects, grounded on the teacher examples'
// hand-rolled simpleFS: every path is joined under a root directory and
// dispatched to the matching os.* call, with parent directories created
// on demand for writes.
package osfs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/absfs/absfs"
)

// FS is an absfs.FileSystem rooted at a real directory.
type FS struct {
	root string
}

// New returns an FS rooted at root. root is created if it does not exist.
func New(root string) (*FS, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FS{root: root}, nil
}

func (fs *FS) join(name string) string {
	return filepath.Join(fs.root, filepath.FromSlash(name))
}

func (fs *FS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	path := fs.join(name)
	if flag&(os.O_CREATE|os.O_WRONLY|os.O_RDWR) != 0 {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, flag, perm)
}

func (fs *FS) Open(name string) (absfs.File, error) {
	return fs.OpenFile(name, os.O_RDONLY, 0)
}

func (fs *FS) Create(name string) (absfs.File, error) {
	return fs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
}

func (fs *FS) Mkdir(name string, perm os.FileMode) error { return os.Mkdir(fs.join(name), perm) }
func (fs *FS) MkdirAll(name string, perm os.FileMode) error {
	return os.MkdirAll(fs.join(name), perm)
}
func (fs *FS) Remove(name string) error        { return os.Remove(fs.join(name)) }
func (fs *FS) RemoveAll(name string) error     { return os.RemoveAll(fs.join(name)) }
func (fs *FS) Rename(oldname, newname string) error {
	return os.Rename(fs.join(oldname), fs.join(newname))
}
func (fs *FS) Stat(name string) (os.FileInfo, error) { return os.Stat(fs.join(name)) }
func (fs *FS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(fs.join(name), mode)
}
func (fs *FS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(fs.join(name), atime, mtime)
}
func (fs *FS) Chown(name string, uid, gid int) error { return os.Chown(fs.join(name), uid, gid) }
func (fs *FS) Truncate(name string, size int64) error {
	return os.Truncate(fs.join(name), size)
}

func (fs *FS) Separator() uint8     { return os.PathSeparator }
func (fs *FS) ListSeparator() uint8 { return os.PathListSeparator }
func (fs *FS) Chdir(dir string) error {
	return nil
}
func (fs *FS) Getwd() (string, error) { return "/", nil }
func (fs *FS) TempDir() string        { return os.TempDir() }
