package logcat

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	FormatParquet ExportFormat = "parquet"
	FormatCSV     ExportFormat = "csv"
	FormatJSONL   ExportFormat = "jsonl"
)

// ParseFormat validates an export format string.
func ParseFormat(s string) (ExportFormat, error) {
	switch s {
	case "parquet":
		return FormatParquet, nil
	case "csv":
		return FormatCSV, nil
	case "jsonl":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("unsupported format %q: expected parquet, csv, or jsonl", s)
	}
}

// Row is one exported log line. Unstructured lines keep empty level and tag
// with the raw line as the message.
type Row struct {
	Line    int64  `json:"line" parquet:"line"`
	Ts      string `json:"ts,omitempty" parquet:"ts,optional,dict"`
	Level   string `json:"level,omitempty" parquet:"level,optional,dict"`
	Tag     string `json:"tag,omitempty" parquet:"tag,optional,dict"`
	Message string `json:"msg" parquet:"msg"`
}

// rowWriter is the per-format sink.
type rowWriter interface {
	Write(Row) error
	Close() error
}

// Export re-reads the capture at src and writes every line as a structured
// row to dst. Returns the number of rows written.
func Export(src, dst string, format ExportFormat) (int64, error) {
	r, err := OpenReader(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Close() }()

	w, err := newRowWriter(dst, format)
	if err != nil {
		return 0, err
	}

	var written int64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		written++
		row := Row{Line: written, Message: line}
		if entry, ok := ParseLine(line); ok {
			row.Ts = entry.Timestamp
			row.Level = entry.LevelName
			row.Tag = entry.Tag
			row.Message = entry.Message
		}
		if err := w.Write(row); err != nil {
			_ = w.Close()
			return written, fmt.Errorf("write row: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = w.Close()
		return written, fmt.Errorf("read log stream: %w", err)
	}

	if err := w.Close(); err != nil {
		return written, fmt.Errorf("finalize export: %w", err)
	}
	return written, nil
}

func newRowWriter(path string, format ExportFormat) (rowWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	switch format {
	case FormatParquet:
		return &parquetRowWriter{
			f: f,
			w: parquet.NewGenericWriter[Row](f, parquet.Compression(&zstd.Codec{})),
		}, nil
	case FormatCSV:
		w := csv.NewWriter(f)
		if err := w.Write([]string{"line", "ts", "level", "tag", "msg"}); err != nil {
			_ = f.Close()
			return nil, err
		}
		return &csvRowWriter{f: f, w: w}, nil
	case FormatJSONL:
		return &jsonlRowWriter{f: f, enc: json.NewEncoder(f)}, nil
	default:
		_ = f.Close()
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

const parquetBatchSize = 10000

type parquetRowWriter struct {
	f     *os.File
	w     *parquet.GenericWriter[Row]
	batch []Row
}

func (p *parquetRowWriter) Write(r Row) error {
	p.batch = append(p.batch, r)
	if len(p.batch) >= parquetBatchSize {
		return p.flush()
	}
	return nil
}

func (p *parquetRowWriter) flush() error {
	if len(p.batch) == 0 {
		return nil
	}
	_, err := p.w.Write(p.batch)
	p.batch = p.batch[:0]
	return err
}

func (p *parquetRowWriter) Close() error {
	if err := p.flush(); err != nil {
		_ = p.w.Close()
		_ = p.f.Close()
		return err
	}
	if err := p.w.Close(); err != nil {
		_ = p.f.Close()
		return err
	}
	return p.f.Close()
}

type csvRowWriter struct {
	f *os.File
	w *csv.Writer
}

func (c *csvRowWriter) Write(r Row) error {
	return c.w.Write([]string{
		strconv.FormatInt(r.Line, 10), r.Ts, r.Level, r.Tag, r.Message,
	})
}

func (c *csvRowWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		_ = c.f.Close()
		return err
	}
	return c.f.Close()
}

type jsonlRowWriter struct {
	f   *os.File
	enc *json.Encoder
}

func (j *jsonlRowWriter) Write(r Row) error {
	return j.enc.Encode(r)
}

func (j *jsonlRowWriter) Close() error {
	return j.f.Close()
}
