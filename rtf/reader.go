// Package rtf extracts the single table embedded in an RTF document into a
// typed, column-oriented model.Table. Tokenization is an explicit forward
// scan over row and cell-definition markers; the first two rows form a
// composite multi-row header, the remainder the table body.
package rtf

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/rtfdelta/model"
)

// ErrMalformedDocument is returned when a document does not contain a
// parseable table: fewer than three tokenized rows, no body rows after
// filtering, or an inconsistent-width row interleaved with well-formed rows.
var ErrMalformedDocument = errors.New("malformed rtf table document")

// LoadOptions configures table loading.
type LoadOptions struct {
	// GroupExpand selects the grouped-header expansion policy. The zero
	// value is GroupExpandRepeat.
	GroupExpand GroupExpandPolicy
}

// LoadTable loads the table from an RTF file with default options.
func LoadTable(path string) (*model.Table, error) {
	return LoadTableOptions(path, LoadOptions{})
}

// LoadTableOptions loads the table from an RTF file.
func LoadTableOptions(path string, opts LoadOptions) (*model.Table, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return Parse(doc, opts)
}

// Parse assembles the table embedded in raw document text.
func Parse(doc string, opts LoadOptions) (*model.Table, error) {
	rows := scanRows(doc)
	if len(rows) < 3 {
		return nil, fmt.Errorf("%w: document contains %d table row(s), need at least 3",
			ErrMalformedDocument, len(rows))
	}

	top, sub := rows[0], rows[1]
	names := buildColumns(top, sub, opts.GroupExpand)

	body, err := normalizeBody(rows[2:], top, sub, len(names), stubSpan(names))
	if err != nil {
		return nil, err
	}

	cols := make([]model.Column, len(names))
	for j, name := range names {
		raw := make([]string, len(body))
		for i := range body {
			raw[i] = body[i][j]
		}
		cols[j] = model.Column{Name: name, Values: inferColumn(raw)}
	}
	return model.New(cols), nil
}

// readDocument reads the whole file. RTF is an ANSI format: when the bytes
// are not valid UTF-8 they are decoded as Windows-1252, the code page
// declared by the documents this parser targets. ASCII content is unaffected.
func readDocument(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading rtf document: %w", err)
	}
	if !utf8.Valid(b) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
		if err == nil {
			return string(decoded), nil
		}
	}
	return string(b), nil
}
