package registry

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// excludedNames are files/directories left out when an add-on is copied.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// treeSize returns the number of bytes copyDir would copy from src.
func treeSize(src string) (int64, error) {
	var total int64
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != src && shouldExclude(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	return total, err
}

// copyDir recursively copies src to dst, excluding entries in excludedNames.
// progress receives the number of bytes copied so far after every chunk.
// Copying stops with ctx's error once ctx is done.
func copyDir(ctx context.Context, src, dst string, progress func(copied int64)) error {
	var copied int64
	return copyDirCounting(ctx, src, dst, &copied, progress)
}

func copyDirCounting(ctx context.Context, src, dst string, copied *int64, progress func(int64)) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()|0700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if shouldExclude(entry.Name()) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDirCounting(ctx, srcPath, dstPath, copied, progress); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(ctx, srcPath, dstPath, copied, progress); err != nil {
				return fmt.Errorf("copying %s: %w", srcPath, err)
			}
		}
		// Symlinks and other special files are not copied.
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(ctx context.Context, src, dst string, copied *int64, progress func(int64)) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			out.Close()
			return err
		}
		n, rerr := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				return werr
			}
			*copied += int64(n)
			if progress != nil {
				progress(*copied)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			return rerr
		}
	}
	return out.Close()
}

// shouldExclude returns true if the name should be excluded during copy.
func shouldExclude(name string) bool {
	return excludedNames[name]
}
