package table

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Style selects how each value line is laid out.
type Style int

const (
	// StyleCompact writes "<value>," per line.
	StyleCompact Style = iota
	// StyleLegacy writes "<value> ," per line, the layout the first
	// generator script produced.
	StyleLegacy
)

func (s Style) separator() string {
	if s == StyleLegacy {
		return " ,"
	}
	return ","
}

// WriteTo writes t as header text in the compact style.
func (t Table) WriteTo(w io.Writer) (int64, error) {
	return write(w, t, StyleCompact)
}

// Format renders t as header text.
func Format(t Table, style Style) []byte {
	var buf bytes.Buffer
	_, _ = write(&buf, t, style)
	return buf.Bytes()
}

func write(w io.Writer, t Table, style Style) (int64, error) {
	bw := bufio.NewWriter(w)
	sep := style.separator()

	var total int64
	for _, v := range t {
		n, err := bw.WriteString(strconv.Itoa(v) + sep + "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	if err := bw.Flush(); err != nil {
		// Bytes still buffered never reached w.
		return total - int64(bw.Buffered()), err
	}

	return total, nil
}

// WriteFile creates or truncates path and writes t to it.
func WriteFile(path string, t Table, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create header file %s: %w", path, err)
	}

	if _, err := write(f, t, style); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close header file %s: %w", path, err)
	}

	return nil
}

// Parse reads header text in either style. Blank lines are skipped; every
// other line must hold one integer followed by an optional comma.
func Parse(r io.Reader) (Table, error) {
	var t Table

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		text = strings.TrimSpace(strings.TrimSuffix(text, ","))
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid sample %q", line, sc.Text())
		}
		if v < math.MinInt16 || v > math.MaxInt16 {
			return nil, fmt.Errorf("line %d: sample %d outside 16-bit range", line, v)
		}

		t = append(t, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	return t, nil
}

// ReadFile parses the header at path.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open header file %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
