package server

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func writeArchive(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs.tar.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		hdr := &tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}
		if content == "" {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
			hdr.Size = 0
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header: %v", err)
		}
		if content != "" {
			if _, err := tw.Write([]byte(content)); err != nil {
				t.Fatalf("write content: %v", err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return path
}

func TestExtractLogArchive(t *testing.T) {
	path := writeArchive(t, map[string]string{
		"run1/events.out.tfevents.100": "event-data-1",
		"run2/events.out.tfevents.200": "event-data-2",
	})

	dir, err := ExtractLogArchive(path)
	if err != nil {
		t.Fatalf("ExtractLogArchive() error: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	data, err := os.ReadFile(filepath.Join(dir, "run1", "events.out.tfevents.100"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(data) != "event-data-1" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestExtractLogArchiveUnwrapsSingleDir(t *testing.T) {
	path := writeArchive(t, map[string]string{
		"logs/":                        "",
		"logs/run1/events.out.tfevents": "event-data",
	})

	dir, err := ExtractLogArchive(path)
	if err != nil {
		t.Fatalf("ExtractLogArchive() error: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(filepath.Dir(dir)) })

	if filepath.Base(dir) != "logs" {
		t.Errorf("expected single top-level dir to be unwrapped, got %s", dir)
	}
	if _, err := os.Stat(filepath.Join(dir, "run1", "events.out.tfevents")); err != nil {
		t.Errorf("expected nested file present: %v", err)
	}
}

func TestExtractLogArchiveRejectsTraversal(t *testing.T) {
	path := writeArchive(t, map[string]string{
		"../escape.txt": "bad",
	})

	if _, err := ExtractLogArchive(path); err == nil {
		t.Fatal("expected error for path traversal entry")
	}
}

func TestExtractLogArchiveMissingFile(t *testing.T) {
	if _, err := ExtractLogArchive(filepath.Join(t.TempDir(), "nope.tar.gz")); err == nil {
		t.Fatal("expected error for missing archive")
	}
}

func TestExtractLogArchiveNotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.tar.gz")
	if err := os.WriteFile(path, []byte("not gzip at all"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ExtractLogArchive(path); err == nil {
		t.Fatal("expected error for non-gzip input")
	}
}
