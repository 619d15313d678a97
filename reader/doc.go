// Package reader loads delimited-text and XML documents from disk.
//
// It detects the format of each file from its extension, falling back to
// a content sniff when the extension is unrecognized, and supports both
// single-file and multi-file (glob pattern) operations.
//
// # Basic Usage
//
// Loading a single file:
//
//	in, err := reader.Load("data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(in.Format, len(in.Data))
//
// # Multi-file Operations
//
// Loading multiple files using glob patterns:
//
//	inputs, err := reader.LoadGlob("data/*.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, in := range inputs {
//	    fmt.Printf("From %s: %d bytes\n", in.Path, len(in.Data))
//	}
//
// # Format Detection
//
// The extension decides the format: .csv and .tsv are delimited text,
// .xml is XML. Anything else is sniffed: a document whose first
// non-whitespace byte is '<' is treated as XML, everything else as
// delimited text. Tab-separated files get a tab suggested as their
// delimiter through Input.Delimiter.
package reader
