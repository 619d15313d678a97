package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/flatcat/csv"
	"github.com/vegasq/flatcat/output"
	"github.com/vegasq/flatcat/reader"
	"github.com/vegasq/flatcat/xml"
)

var (
	formatFlag = flag.String("f", "jsonl", "Output format: jsonl, csv, table, parquet, xml")
	outputFlag = flag.String("o", "", "Output file (default stdout, required for parquet)")

	delimiterFlag = flag.String("d", "", "Field delimiter (default comma, tab for .tsv)")
	quoteFlag     = flag.String("quote", "\"", "Quote character")
	escapeFlag    = flag.String("escape", "\"", "Escape character")
	nullFlag      = flag.String("null", "", "Text that reads and writes as a null value")
	noHeaderFlag  = flag.Bool("no-header", false, "Treat the first row as data, not column names")
	trimFlag      = flag.Bool("trim", false, "Trim leading and trailing whitespace from field values")
	skipEmptyFlag = flag.Bool("skip-empty", false, "Skip empty lines between records")
	typesFlag     = flag.String("types", "", "Column types, e.g. \"age=integer,joined=datetime\"")

	preserveWSFlag  = flag.Bool("preserve-ws", false, "Keep whitespace-only text nodes in XML input")
	rawEntitiesFlag = flag.Bool("raw-entities", false, "Do not decode character entities in XML input")
	indentFlag      = flag.String("indent", "", "Indent string for xml output, e.g. \"  \"")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A tool to read, convert and re-emit CSV and XML files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f table -types \"age=integer\" data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f parquet -o out.parquet \"logs/*.csv\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f xml -indent \"  \" config.xml\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing input file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}

	out := io.Writer(os.Stdout)
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	} else if *formatFlag == "parquet" {
		fmt.Fprintf(os.Stderr, "Error: parquet output requires -o\n")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the input (expanding glob patterns), converts it and writes
// the result in the selected output format.
func run(pattern string, out io.Writer) error {
	inputs, err := reader.LoadGlob(pattern)
	if err != nil {
		return err
	}

	if inputs[0].Format == reader.FormatXML {
		if len(inputs) > 1 {
			return fmt.Errorf("glob patterns over XML files are not supported")
		}
		return runXML(inputs[0], out)
	}

	data, err := parseInputs(inputs)
	if err != nil {
		return err
	}
	return emitRows(data, out)
}

// parseInputs parses every loaded file and concatenates the rows.
//
// All files must share the same column set; rows from later files are
// appended after rows from earlier ones.
func parseInputs(inputs []*reader.Input) (csv.Data, error) {
	var all csv.Data
	for _, in := range inputs {
		if in.Format != reader.FormatCSV {
			return nil, fmt.Errorf("%s: cannot mix XML and CSV inputs", in.Path)
		}

		cfg, err := buildParseConfig(in)
		if err != nil {
			return nil, err
		}

		data, err := csv.Parse(in.Data, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Path, err)
		}

		if len(all) > 0 && len(data) > 0 && !sameColumns(all[0].Names(), data[0].Names()) {
			return nil, fmt.Errorf("%s: columns do not match earlier inputs", in.Path)
		}
		all = append(all, data...)
	}
	return all, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// buildParseConfig translates the CSV flags into a parse configuration
// for one input file.
func buildParseConfig(in *reader.Input) (csv.ParseConfig, error) {
	cfg := csv.DefaultParseConfig()
	cfg.Delimiter = in.Delimiter
	if *delimiterFlag != "" {
		cfg.Delimiter = *delimiterFlag
	}
	cfg.Quote = *quoteFlag
	cfg.Escape = *escapeFlag
	cfg.NullString = *nullFlag
	cfg.HasHeader = !*noHeaderFlag
	cfg.TrimFields = *trimFlag
	cfg.SkipEmptyLines = *skipEmptyFlag

	if *typesFlag != "" {
		types, err := parseTypes(*typesFlag)
		if err != nil {
			return csv.ParseConfig{}, err
		}
		cfg.ColumnTypes = types
	}
	return cfg, nil
}

// parseTypes parses a "name=kind,name=kind" column type list.
func parseTypes(s string) (map[string]csv.Kind, error) {
	types := make(map[string]csv.Kind)
	for _, pair := range strings.Split(s, ",") {
		name, kindName, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid column type %q, expected name=kind", pair)
		}
		kind, err := csv.ParseKind(kindName)
		if err != nil {
			return nil, err
		}
		types[name] = kind
	}
	return types, nil
}

// emitRows writes tabular data in the selected output format.
func emitRows(data csv.Data, out io.Writer) error {
	var formatter output.Formatter
	switch *formatFlag {
	case "jsonl":
		formatter = output.NewJSONFormatter(out)
	case "csv":
		f := output.NewCSVFormatter(out)
		f.Config.NullString = *nullFlag
		formatter = f
	case "table":
		formatter = output.NewTableFormatter(out)
	case "parquet":
		formatter = output.NewParquetFormatter(out)
	case "xml":
		return fmt.Errorf("xml output requires an XML input file")
	default:
		return fmt.Errorf("unsupported format %q (supported: jsonl, csv, table, parquet, xml)", *formatFlag)
	}
	return formatter.Format(data)
}

// runXML parses an XML file and re-emits it as XML or as a single JSON
// object describing the element tree.
func runXML(in *reader.Input, out io.Writer) error {
	cfg := xml.DefaultParseConfig()
	cfg.PreserveWhitespace = *preserveWSFlag
	cfg.DecodeEntities = !*rawEntitiesFlag

	root, err := xml.Parse(in.Data, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", in.Path, err)
	}

	switch *formatFlag {
	case "xml":
		scfg := xml.DefaultSerializeConfig()
		scfg.Indent = *indentFlag
		buf, err := xml.Serialize(root, scfg)
		if err != nil {
			return err
		}
		_, err = out.Write(buf)
		return err
	case "jsonl":
		enc := json.NewEncoder(out)
		return enc.Encode(nodeValue(root))
	default:
		return fmt.Errorf("unsupported format %q for XML input (supported: xml, jsonl)", *formatFlag)
	}
}

// nodeValue converts an element tree into plain maps and strings for
// JSON encoding. Text nodes become strings, elements become objects
// with "tag", optional "attrs" and optional "children" keys.
func nodeValue(n *xml.Node) interface{} {
	if n.Kind == xml.TextNode {
		return n.Text
	}

	obj := map[string]interface{}{"tag": n.Tag}
	if len(n.Attrs) > 0 {
		attrs := make(map[string]interface{}, len(n.Attrs))
		for _, a := range n.Attrs {
			attrs[a.Name] = a.Value
		}
		obj["attrs"] = attrs
	}
	if len(n.Children) > 0 {
		children := make([]interface{}, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, nodeValue(c))
		}
		obj["children"] = children
	}
	return obj
}
