package readme

import (
	"os"
	"path/filepath"

	"github.com/agentstation/readmesync/pkg/errors"
)

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath, err := stage(path, data, perm)
	if err != nil {
		return err
	}
	return commit(tmpPath, path)
}

// staged is a fully written temp file waiting to replace path.
type staged struct {
	path string
	tmp  string
}

// writeFiles stages every file before renaming any of them. A staging
// failure removes every temp file and leaves all targets untouched.
func writeFiles(files map[string][]byte, order []string, perm os.FileMode) error {
	pending := make([]staged, 0, len(order))
	for _, path := range order {
		tmp, err := stage(path, files[path], perm)
		if err != nil {
			discard(pending)
			return err
		}
		pending = append(pending, staged{path: path, tmp: tmp})
	}

	for i, s := range pending {
		if err := commit(s.tmp, s.path); err != nil {
			discard(pending[i+1:])
			return err
		}
	}
	return nil
}

func discard(pending []staged) {
	for _, s := range pending {
		_ = os.Remove(s.tmp)
	}
}

// stage writes data to a synced temp file in path's directory carrying the
// existing file's mode, or perm for a new file.
func stage(path string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errors.WrapIO("create", "temp file for "+path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO("close", path, err)
	}

	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO("chmod", path, err)
	}
	return tmpPath, nil
}

func commit(tmpPath, path string) error {
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
