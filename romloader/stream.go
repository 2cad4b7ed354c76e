package romloader

import (
	"archive/tar"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// tarMagic sits at tarMagicOffset in every POSIX tar header.
var tarMagic = []byte("ustar")

const tarMagicOffset = 257

// extractFromGzip decompresses a gzip file. A tarball inside is searched
// for the first ROM image.
func extractFromGzip(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open gzip: %w", err)
	}
	defer zr.Close()

	name := zr.Name
	if name == "" {
		name = trimCompressedExt(path)
	}
	return extractFromStream(zr, name)
}

// extractFromXZ decompresses an xz file. A tarball inside is searched for
// the first ROM image.
func extractFromXZ(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open xz: %w", err)
	}
	return extractFromStream(xr, trimCompressedExt(path))
}

// extractFromStream reads a single decompressed image, or walks it as a tar
// archive when it carries a tar header.
func extractFromStream(r io.Reader, name string) ([]byte, string, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(tarMagicOffset + len(tarMagic))
	if len(head) == tarMagicOffset+len(tarMagic) && bytes.Equal(head[tarMagicOffset:], tarMagic) {
		return extractFromTar(br)
	}

	data, err := limitedRead(br)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress: %w", err)
	}
	return data, filepath.Base(name), nil
}

// extractFromTar extracts the first ROM image from a tar stream
func extractFromTar(r io.Reader) ([]byte, string, error) {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !isROMFile(header.Name) {
			continue
		}

		data, err := limitedRead(tr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoROMFile
}

// trimCompressedExt drops a trailing compression extension from path.
func trimCompressedExt(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, ext := range []string{".gz", ".xz"} {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}
