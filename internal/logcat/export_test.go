package logcat

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"parquet", "csv", "jsonl"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestExportCSV(t *testing.T) {
	src := writeSample(t)
	dst := filepath.Join(t.TempDir(), "out.csv")

	n, err := Export(src, dst, FormatCSV)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("rows = %d, want 3", n)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 4 { // header + 3 rows
		t.Fatalf("records = %d, want 4", len(records))
	}
	if records[0][0] != "line" || records[0][4] != "msg" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][2] != "Error" || records[1][3] != "ActivityManager" || records[1][4] != "crash" {
		t.Errorf("row 1 = %v", records[1])
	}
	// unstructured line keeps the raw text as message
	if records[3][2] != "" || records[3][4] != "garbage" {
		t.Errorf("row 3 = %v", records[3])
	}
}

func TestExportJSONL(t *testing.T) {
	src := writeSample(t)
	dst := filepath.Join(t.TempDir(), "out.jsonl")

	if _, err := Export(src, dst, FormatJSONL); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var rows []Row
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r Row
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("bad JSONL line: %v", err)
		}
		rows = append(rows, r)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Tag != "ActivityManager" || rows[0].Level != "Error" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Ts != "01-01 00:00:02.000" {
		t.Errorf("rows[1].Ts = %q", rows[1].Ts)
	}
	if rows[2].Level != "" || rows[2].Message != "garbage" {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestExportParquet(t *testing.T) {
	src := writeSample(t)
	dst := filepath.Join(t.TempDir(), "out.parquet")

	if _, err := Export(src, dst, FormatParquet); err != nil {
		t.Fatal(err)
	}

	rows, err := parquet.ReadFile[Row](dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Line != 1 || rows[0].Tag != "ActivityManager" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[2].Message != "garbage" {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestExportMissingSource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.csv")
	if _, err := Export("/nonexistent/capture.log", dst, FormatCSV); err == nil {
		t.Error("expected error for missing source")
	}
}
