// Package curve provides streaming readers for column-based scattering curve files
package curve

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ChrisMcGann/SAXSKey/pkg/core"
)

// Reader provides streaming access to "q I [sigma]" files
type Reader struct {
	scanner *bufio.Scanner
	lineNum int
	current core.Point
	title   string
	inData  bool // a data point has been read
	err     error
}

// NewReader creates a new curve reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Next advances to the next data point. Returns false at end of input or on error.
func (r *Reader) Next() bool {
	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		// Skip blank lines and comments
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if r.title == "" {
				r.title = strings.TrimSpace(strings.TrimLeft(line, "#"))
			}
			continue
		}

		point, ok, err := parsePoint(line)
		if err != nil {
			r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
			return false
		}
		if !ok {
			if r.inData {
				r.err = fmt.Errorf("line %d: invalid q value in data block: %q", r.lineNum, line)
				return false
			}
			// header text
			continue
		}
		r.inData = true
		r.current = point
		return true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = err
	}
	return false
}

// Point returns the current data point
func (r *Reader) Point() core.Point {
	return r.current
}

// Title returns the first comment line seen so far
func (r *Reader) Title() string {
	return r.title
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// parsePoint reads whitespace or comma separated columns. Lines whose first
// field is not a number are reported as !ok; Next skips them only before the
// first data point.
func parsePoint(line string) (core.Point, bool, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == ';'
	})
	if len(fields) == 0 {
		return core.Point{}, false, nil
	}

	q, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Point{}, false, nil
	}
	if len(fields) < 2 {
		return core.Point{}, false, fmt.Errorf("expected at least 2 columns, got %d", len(fields))
	}

	intensity, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Point{}, false, fmt.Errorf("invalid intensity value '%s': %w", fields[1], err)
	}

	point := core.Point{Q: q, Intensity: intensity}

	if len(fields) >= 3 {
		sigma, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return core.Point{}, false, fmt.Errorf("invalid error value '%s': %w", fields[2], err)
		}
		point.Sigma = sigma
	}

	return point, true, nil
}

// ReadCurve reads all points from r into a sorted curve
func ReadCurve(r io.Reader) (*core.Curve, error) {
	reader := NewReader(r)
	c := &core.Curve{}
	for reader.Next() {
		c.Points = append(c.Points, reader.Point())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	c.Title = reader.Title()
	if !c.IsSorted() {
		c.Sort()
	}
	return c, nil
}

// ReadFile reads a curve from path, decompressing .zst files
func ReadFile(path string) (*core.Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open curve file: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	c, err := ReadCurve(src)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	c.SourceFile = path
	return c, nil
}
