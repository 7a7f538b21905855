package server

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractLogArchive unpacks a .tar.gz log archive into a fresh temporary
// directory and returns the directory to point TensorBoard at. If the
// archive contains a single top-level directory, that directory is returned
// instead of the extraction root.
func ExtractLogArchive(archivePath string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("read gzip header: %w", err)
	}
	defer gz.Close()

	dest, err := os.MkdirTemp("", "tbtop-logs-")
	if err != nil {
		return "", fmt.Errorf("create extraction dir: %w", err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read archive: %w", err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return "", err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", fmt.Errorf("create dir %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", fmt.Errorf("create dir for %s: %w", hdr.Name, err)
			}
			if err := writeFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return "", fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
		default:
			// Symlinks and specials are skipped; event logs are plain files.
		}
	}

	return unwrapSingleDir(dest), nil
}

// safeJoin joins name under dest and rejects entries that escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.Clean(name))
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction dir", name)
	}
	return target, nil
}

func writeFile(path string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, r)
	return err
}

// unwrapSingleDir returns the lone top-level directory of dir when that is
// all the archive contained, matching how archives of a logdir are usually
// packed.
func unwrapSingleDir(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return dir
	}
	return filepath.Join(dir, entries[0].Name())
}
