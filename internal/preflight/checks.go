package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CheckReadableFile verifies that path names a regular file the process can read.
func CheckReadableFile(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, formatSize(info.Size()))}
}

// CheckDirectoryAccess verifies that the directory exists and is readable,
// and writable too when write is set.
func CheckDirectoryAccess(name, path string, write bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	label := "read ok"
	if write {
		mode |= unix.W_OK
		label = "read/write ok"
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, label)}
}

// CheckWritableTarget verifies that a file can be created or replaced at
// path. Missing parent directories are fine as long as the nearest existing
// ancestor is writable, since builds create them.
func CheckWritableTarget(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}

	dir := filepath.Dir(path)
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s is not a directory)", path, dir)}
			}
			break
		}
		if !os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing parent directory)", path)}
		}
		dir = parent
	}

	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s not writable: %v)", path, dir, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
