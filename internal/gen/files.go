//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
)

//
// FILES
//

// gzipreadcloser - closes the gzip stream and then the file under it
type gzipreadcloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipreadcloser) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}

// gzipwritecloser - flushes the gzip stream and then closes the file under it
type gzipwritecloser struct {
	*gzip.Writer
	f *os.File
}

func (g gzipwritecloser) Close() error {
	return errors.Join(g.Writer.Close(), g.f.Close())
}

// IsGzip - the ".gz" extension decides whether a file is compressed
func IsGzip(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// OpenMaybeGzip - open a file for reading; ".gz" files are decompressed on the fly
func OpenMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !IsGzip(path) {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return gzipreadcloser{Reader: zr, f: f}, nil
}

// CreateMaybeGzip - create (or truncate) a file for writing; ".gz" files are compressed on the fly
func CreateMaybeGzip(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !IsGzip(path) {
		return f, nil
	}
	zw, err := gzip.NewWriterLevel(f, gzip.BestSpeed)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return gzipwritecloser{Writer: zw, f: f}, nil
}

// FileExists - true if something is at the path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
