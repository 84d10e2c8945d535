package catalog

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// Maximum ROM size. The largest GBA carts are 32MB; anything past this
// is not a ROM we can stage.
const maxRomSize = 64 * 1024 * 1024

// ErrNoRomInArchive is returned when an archive holds no recognizable ROM
var ErrNoRomInArchive = errors.New("no ROM file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrRomTooLarge is returned when content exceeds the size limit
var ErrRomTooLarge = errors.New("file exceeds maximum ROM size")

// formatType represents the detected file format
type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// LoadRom reads the ROM bytes for a catalog path. Raw ROM files are read
// directly; archives are detected via magic bytes and the first contained
// file with a ROM extension is extracted. Returns the data and the ROM's
// filename (the inner name for archives, useful for its extension).
func LoadRom(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	format := detectFormat(header, path)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to seek file: %w", err)
	}

	switch format {
	case formatRaw:
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read ROM: %w", err)
		}
		return data, filepath.Base(path), nil

	case formatZIP:
		return extractFromZIP(path)

	case format7z:
		return extractFrom7z(path)

	case formatGzip:
		return extractFromGzip(path)

	case formatRAR:
		return extractFromRAR(path)

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// probeArchive returns the name of the first ROM file contained in an
// archive without extracting its payload. Used during scanning to
// classify archives by their inner ROM's platform.
func probeArchive(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	header := make([]byte, 16)
	n, _ := f.Read(header)
	f.Close()
	header = header[:n]

	switch detectFormat(header, path) {
	case formatZIP:
		r, err := zip.OpenReader(path)
		if err != nil {
			return "", fmt.Errorf("failed to open zip: %w", err)
		}
		defer r.Close()
		for _, zf := range r.File {
			if zf.FileInfo().IsDir() {
				continue
			}
			if isRomFile(zf.Name) {
				return filepath.Base(zf.Name), nil
			}
		}
		return "", ErrNoRomInArchive

	case format7z:
		r, err := sevenzip.OpenReader(path)
		if err != nil {
			return "", fmt.Errorf("failed to open 7z: %w", err)
		}
		defer r.Close()
		for _, zf := range r.File {
			if zf.FileInfo().IsDir() {
				continue
			}
			if isRomFile(zf.Name) {
				return filepath.Base(zf.Name), nil
			}
		}
		return "", ErrNoRomInArchive

	case formatRAR:
		r, err := rardecode.OpenReader(path)
		if err != nil {
			return "", fmt.Errorf("failed to open rar: %w", err)
		}
		defer r.Close()
		for {
			hdr, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", fmt.Errorf("failed to read rar entry: %w", err)
			}
			if hdr.IsDir {
				continue
			}
			if isRomFile(hdr.Name) {
				return filepath.Base(hdr.Name), nil
			}
		}
		return "", ErrNoRomInArchive

	case formatGzip:
		return probeGzip(path)

	default:
		return "", ErrUnsupportedFormat
	}
}

// detectFormat determines the file format based on magic bytes with an
// extension fallback for archives. Anything with a ROM extension and no
// archive magic is raw.
func detectFormat(header []byte, path string) formatType {
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	lower := strings.ToLower(path)
	switch filepath.Ext(lower) {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	if isRomFile(path) {
		return formatRaw
	}

	return formatUnknown
}

// extractFromZIP extracts the first ROM file from a ZIP archive
func extractFromZIP(path string) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !isRomFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()

		data, err := limitedRead(rc)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return data, filepath.Base(f.Name), nil
	}

	return nil, "", ErrNoRomInArchive
}

// extractFrom7z extracts the first ROM file from a 7z archive
func extractFrom7z(path string) ([]byte, string, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !isRomFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()

		data, err := limitedRead(rc)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return data, filepath.Base(f.Name), nil
	}

	return nil, "", ErrNoRomInArchive
}

// extractFromGzip extracts the first ROM file from a gzip or tar.gz archive
func extractFromGzip(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open gzip: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	if isTarGz(path) {
		return extractFromTar(gr)
	}

	// Plain .gz file. The decompressed content is the ROM; its name is
	// the base name without the .gz extension.
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !isRomFile(name) {
		return nil, "", ErrNoRomInArchive
	}

	data, err := limitedRead(gr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress gzip: %w", err)
	}
	return data, name, nil
}

// extractFromTar extracts the first ROM file from a tar stream
func extractFromTar(r io.Reader) ([]byte, string, error) {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if !isRomFile(hdr.Name) {
			continue
		}
		data, err := limitedRead(tr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", hdr.Name, err)
		}
		return data, filepath.Base(hdr.Name), nil
	}
	return nil, "", ErrNoRomInArchive
}

// extractFromRAR extracts the first ROM file from a RAR archive
func extractFromRAR(path string) ([]byte, string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read rar entry: %w", err)
		}

		if header.IsDir {
			continue
		}
		if !isRomFile(header.Name) {
			continue
		}

		data, err := limitedRead(r)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoRomInArchive
}

// probeGzip names the ROM inside a gzip file without reading the payload
// when possible. Plain .gz names the ROM by stripping the extension;
// tar.gz needs a header walk.
func probeGzip(path string) (string, error) {
	if isTarGz(path) {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open gzip: %w", err)
		}
		defer f.Close()
		gr, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gr.Close()
		tr := tar.NewReader(gr)
		for {
			hdr, err := tr.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", fmt.Errorf("failed to read tar entry: %w", err)
			}
			if hdr.Typeflag == tar.TypeReg && isRomFile(hdr.Name) {
				return filepath.Base(hdr.Name), nil
			}
		}
		return "", ErrNoRomInArchive
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !isRomFile(name) {
		return "", ErrNoRomInArchive
	}
	return name, nil
}

func isTarGz(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz")
}

// isRomFile checks if a filename has one of the ROM extensions (case-insensitive)
func isRomFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range romExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to maxRomSize bytes, returning an error if exceeded
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxRomSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxRomSize {
		return nil, ErrRomTooLarge
	}
	return data, nil
}
