package catalog

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createZip creates a .zip file at path containing a single named entry
func createZip(t *testing.T, path, entryName string, data []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	fw, err := w.Create(entryName)
	if err != nil {
		t.Fatalf("failed to create file in zip: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("failed to write to zip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
}

// createGzip creates a .gz file at path containing the data. The ROM name
// comes from the path with the .gz extension stripped.
func createGzip(t *testing.T, path string, data []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create gzip file: %v", err)
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("failed to write to gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close gzip: %v", err)
	}
}

// createTarGz creates a .tar.gz file at path with a single named entry
func createTarGz(t *testing.T, path, entryName string, data []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create tar.gz file: %v", err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	if err := tw.WriteHeader(&tar.Header{
		Name:     entryName,
		Mode:     0644,
		Size:     int64(len(data)),
		Typeflag: tar.TypeReg,
	}); err != nil {
		t.Fatalf("failed to write tar header: %v", err)
	}
	if _, err := tw.Write(data); err != nil {
		t.Fatalf("failed to write tar data: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("failed to close gzip: %v", err)
	}
}

func TestLoadRomRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gb")
	want := []byte("raw rom bytes")
	if err := os.WriteFile(path, want, 0644); err != nil {
		t.Fatalf("failed to write ROM: %v", err)
	}

	data, name, err := LoadRom(path)
	if err != nil {
		t.Fatalf("LoadRom failed: %v", err)
	}
	if string(data) != string(want) {
		t.Errorf("data = %q, want %q", data, want)
	}
	if name != "game.gb" {
		t.Errorf("name = %q, want game.gb", name)
	}
}

func TestLoadRomZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packed.zip")
	want := []byte("zipped rom bytes")
	createZip(t, path, "inner/red.gbc", want)

	data, name, err := LoadRom(path)
	if err != nil {
		t.Fatalf("LoadRom failed: %v", err)
	}
	if string(data) != string(want) {
		t.Errorf("data = %q, want %q", data, want)
	}
	if name != "red.gbc" {
		t.Errorf("name = %q, want red.gbc", name)
	}
}

func TestLoadRomZipWithoutRom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs.zip")
	createZip(t, path, "readme.txt", []byte("nothing here"))

	_, _, err := LoadRom(path)
	if !errors.Is(err, ErrNoRomInArchive) {
		t.Errorf("expected ErrNoRomInArchive, got %v", err)
	}
}

func TestLoadRomGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emerald.gba.gz")
	want := []byte("gzipped rom bytes")
	createGzip(t, path, want)

	data, name, err := LoadRom(path)
	if err != nil {
		t.Fatalf("LoadRom failed: %v", err)
	}
	if string(data) != string(want) {
		t.Errorf("data = %q, want %q", data, want)
	}
	if name != "emerald.gba" {
		t.Errorf("name = %q, want emerald.gba", name)
	}
}

func TestLoadRomTarGz(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.tar.gz")
	want := []byte("tar rom bytes")
	createTarGz(t, path, "roms/blue.gb", want)

	data, name, err := LoadRom(path)
	if err != nil {
		t.Fatalf("LoadRom failed: %v", err)
	}
	if string(data) != string(want) {
		t.Errorf("data = %q, want %q", data, want)
	}
	if name != "blue.gb" {
		t.Errorf("name = %q, want blue.gb", name)
	}
}

func TestLoadRomMissingFile(t *testing.T) {
	_, _, err := LoadRom("/nonexistent/path/game.gb")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadRomInvalidRAR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.rar")
	if err := os.WriteFile(path, []byte("not a rar file"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if _, _, err := LoadRom(path); err == nil {
		t.Error("expected error for invalid RAR file")
	}
}

func TestLoadRomInvalid7z(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.7z")
	if err := os.WriteFile(path, []byte("not a 7z file"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if _, _, err := LoadRom(path); err == nil {
		t.Error("expected error for invalid 7z file")
	}
}

func TestLoadRomUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unknown.bin")
	if err := os.WriteFile(path, []byte("mystery bytes"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	_, _, err := LoadRom(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		header   []byte
		path     string
		expected formatType
	}{
		{"zip magic", []byte{0x50, 0x4B, 0x03, 0x04, 0, 0}, "file.bin", formatZIP},
		{"empty zip magic", []byte{0x50, 0x4B, 0x05, 0x06, 0, 0}, "file.bin", formatZIP},
		{"7z magic", []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, "file.bin", format7z},
		{"gzip magic", []byte{0x1F, 0x8B, 0x08}, "file.bin", formatGzip},
		{"rar magic", []byte{0x52, 0x61, 0x72, 0x21, 0x1A}, "file.bin", formatRAR},
		{"zip by extension", []byte{0, 0, 0, 0}, "file.zip", formatZIP},
		{"7z by extension", []byte{0, 0, 0, 0}, "file.7z", format7z},
		{"rar by extension", []byte{0, 0, 0, 0}, "file.rar", formatRAR},
		{"tgz by extension", []byte{0, 0, 0, 0}, "file.tgz", formatGzip},
		{"raw gb", []byte{0xCE, 0xED, 0x66, 0x66}, "game.gb", formatRaw},
		{"raw gba", []byte{0x2E, 0x00, 0x00, 0xEA}, "game.gba", formatRaw},
		{"unknown", []byte{0xDE, 0xAD}, "file.bin", formatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectFormat(tc.header, tc.path); got != tc.expected {
				t.Errorf("detectFormat = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestProbeArchive(t *testing.T) {
	dir := t.TempDir()

	zipPath := filepath.Join(dir, "a.zip")
	createZip(t, zipPath, "deep/gold.gbc", []byte("data"))
	name, err := probeArchive(zipPath)
	if err != nil {
		t.Fatalf("probeArchive(zip) failed: %v", err)
	}
	if name != "gold.gbc" {
		t.Errorf("probeArchive(zip) = %q, want gold.gbc", name)
	}

	gzPath := filepath.Join(dir, "silver.gb.gz")
	createGzip(t, gzPath, []byte("data"))
	name, err = probeArchive(gzPath)
	if err != nil {
		t.Fatalf("probeArchive(gz) failed: %v", err)
	}
	if name != "silver.gb" {
		t.Errorf("probeArchive(gz) = %q, want silver.gb", name)
	}

	emptyPath := filepath.Join(dir, "empty.zip")
	createZip(t, emptyPath, "only.txt", []byte("text"))
	if _, err := probeArchive(emptyPath); !errors.Is(err, ErrNoRomInArchive) {
		t.Errorf("expected ErrNoRomInArchive, got %v", err)
	}
}
