package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vegasq/flatcat/csv"
	"github.com/vegasq/flatcat/reader"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// resetFlags restores every flag to its default between tests; the flag
// values are package globals shared with main.
func resetFlags(t *testing.T) {
	t.Helper()
	*formatFlag = "jsonl"
	*outputFlag = ""
	*delimiterFlag = ""
	*quoteFlag = "\""
	*escapeFlag = "\""
	*nullFlag = ""
	*noHeaderFlag = false
	*trimFlag = false
	*skipEmptyFlag = false
	*typesFlag = ""
	*preserveWSFlag = false
	*rawEntitiesFlag = false
	*indentFlag = ""
}

func TestRun_CSVToJSONL(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := writeInput(t, dir, "people.csv", "name,age\nAlice,30\nBob,25\n")
	*typesFlag = "age=integer"

	var buf bytes.Buffer
	if err := run(path, &buf); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "{\"age\":30,\"name\":\"Alice\"}\n{\"age\":25,\"name\":\"Bob\"}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRun_CSVToCSV(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := writeInput(t, dir, "people.csv", "name;note\nAlice;\"a;b\"\n")
	*formatFlag = "csv"
	*delimiterFlag = ";"

	var buf bytes.Buffer
	if err := run(path, &buf); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "name,note\nAlice,a;b\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRun_CSVToTable(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := writeInput(t, dir, "people.csv", "name,age\nAlice,30\n")
	*formatFlag = "table"

	var buf bytes.Buffer
	if err := run(path, &buf); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"name", "age", "Alice", "30"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_TSVDelimiterDefault(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := writeInput(t, dir, "people.tsv", "name\tage\nAlice\t30\n")

	var buf bytes.Buffer
	if err := run(path, &buf); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\"name\":\"Alice\"") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRun_GlobMergesRows(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "x\n1\n")
	writeInput(t, dir, "b.csv", "x\n2\n")

	var buf bytes.Buffer
	if err := run(filepath.Join(dir, "*.csv"), &buf); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "{\"x\":\"1\"}\n{\"x\":\"2\"}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRun_GlobColumnMismatch(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "x\n1\n")
	writeInput(t, dir, "b.csv", "y\n2\n")

	var buf bytes.Buffer
	err := run(filepath.Join(dir, "*.csv"), &buf)
	if err == nil {
		t.Fatal("expected column mismatch error")
	}
	if !strings.Contains(err.Error(), "columns do not match") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_XMLPrettyPrint(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := writeInput(t, dir, "config.xml", "<root><a>one</a><b/></root>")
	*formatFlag = "xml"
	*indentFlag = "  "

	var buf bytes.Buffer
	if err := run(path, &buf); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "<root>\n  <a>one</a>\n  <b/>\n</root>\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRun_XMLToJSONL(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := writeInput(t, dir, "doc.xml", `<note id="1">hi</note>`)

	var buf bytes.Buffer
	if err := run(path, &buf); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"\"tag\":\"note\"", "\"id\":\"1\"", "\"hi\""} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s: %q", want, out)
		}
	}
}

func TestRun_XMLUnsupportedFormat(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := writeInput(t, dir, "doc.xml", "<root/>")
	*formatFlag = "table"

	var buf bytes.Buffer
	err := run(path, &buf)
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_ParseErrorIncludesPath(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := writeInput(t, dir, "broken.csv", "a,b\n\"oops\n")

	var buf bytes.Buffer
	err := run(path, &buf)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "broken.csv") {
		t.Errorf("error missing file path: %v", err)
	}
	if !strings.Contains(err.Error(), "Unclosed quote") {
		t.Errorf("error missing parse detail: %v", err)
	}
}

func TestParseTypes(t *testing.T) {
	types, err := parseTypes("age=integer,score=float,ok=boolean")
	if err != nil {
		t.Fatalf("parseTypes() error = %v", err)
	}
	want := map[string]csv.Kind{
		"age":   csv.KindInteger,
		"score": csv.KindFloat,
		"ok":    csv.KindBoolean,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d entries, want %d", len(types), len(want))
	}
	for name, kind := range want {
		if types[name] != kind {
			t.Errorf("types[%q] = %v, want %v", name, types[name], kind)
		}
	}

	if _, err := parseTypes("age"); err == nil {
		t.Error("expected error for missing kind")
	}
	if _, err := parseTypes("age=zorp"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBuildParseConfig(t *testing.T) {
	resetFlags(t)
	*noHeaderFlag = true
	*trimFlag = true
	*nullFlag = "NULL"

	cfg, err := buildParseConfig(&reader.Input{Delimiter: "\t"})
	if err != nil {
		t.Fatalf("buildParseConfig() error = %v", err)
	}
	if cfg.Delimiter != "\t" {
		t.Errorf("Delimiter = %q, want tab", cfg.Delimiter)
	}
	if cfg.HasHeader {
		t.Error("HasHeader = true, want false")
	}
	if !cfg.TrimFields {
		t.Error("TrimFields = false, want true")
	}
	if cfg.NullString != "NULL" {
		t.Errorf("NullString = %q, want %q", cfg.NullString, "NULL")
	}

	// An explicit -d beats the extension-derived suggestion.
	*delimiterFlag = "|"
	cfg, err = buildParseConfig(&reader.Input{Delimiter: "\t"})
	if err != nil {
		t.Fatalf("buildParseConfig() error = %v", err)
	}
	if cfg.Delimiter != "|" {
		t.Errorf("Delimiter = %q, want %q", cfg.Delimiter, "|")
	}
}
