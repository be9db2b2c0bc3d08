// Package document maintains the persistent markdown report as an ordered
// list of second-level sections that can be replaced independently.
//
// The report file is plain markdown: an optional preamble followed by
// sections delimited by lines starting with "## ". Each report-producing
// run owns exactly one section and upserts it by exact header text; all
// other sections survive byte-identical apart from trailing-whitespace
// normalization.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// headerPrefix marks a second-level section boundary.
const headerPrefix = "## "

// Section is one named region of the report.
type Section struct {
	// Header is the full header line, e.g. "## Today's Issue TOP10".
	Header string

	// Body is the section content without surrounding blank lines.
	Body string
}

// Document is a parsed report: preamble plus ordered sections.
type Document struct {
	Preamble string
	Sections []Section
}

// Parse splits raw markdown into preamble and sections. Bodies are
// normalized by trimming surrounding blank lines; interior blank lines
// are preserved.
func Parse(raw string) *Document {
	doc := &Document{}
	lines := strings.Split(raw, "\n")

	var buf []string
	current := -1 // -1 while still in the preamble

	flush := func() {
		text := trimBlock(strings.Join(buf, "\n"))
		if current < 0 {
			doc.Preamble = text
		} else {
			doc.Sections[current].Body = text
		}
		buf = buf[:0]
	}

	for _, line := range lines {
		if strings.HasPrefix(line, headerPrefix) {
			flush()
			doc.Sections = append(doc.Sections, Section{Header: strings.TrimRight(line, " \t")})
			current = len(doc.Sections) - 1
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return doc
}

// Upsert replaces the body of the section whose header matches exactly, or
// appends a new section at the end if the header is absent. Repeated calls
// with identical arguments leave the rendered document unchanged.
func (d *Document) Upsert(header, body string) {
	header = strings.TrimRight(header, " \t")
	body = trimBlock(body)

	for i := range d.Sections {
		if d.Sections[i].Header == header {
			d.Sections[i].Body = body
			return
		}
	}
	d.Sections = append(d.Sections, Section{Header: header, Body: body})
}

// Section returns the body of the named section and whether it exists.
func (d *Document) Section(header string) (string, bool) {
	for _, s := range d.Sections {
		if s.Header == header {
			return s.Body, true
		}
	}
	return "", false
}

// Render serializes the document. Blocks are separated by a single blank
// line and the file always ends with exactly one newline, which is what
// makes Upsert idempotent at the byte level.
func (d *Document) Render() string {
	var parts []string
	if pre := trimBlock(d.Preamble); pre != "" {
		parts = append(parts, pre)
	}
	for _, s := range d.Sections {
		block := s.Header
		if body := trimBlock(s.Body); body != "" {
			block += "\n\n" + body
		}
		parts = append(parts, block)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// trimBlock removes surrounding blank lines and trailing spaces from a
// block of text without touching interior formatting.
func trimBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	s = strings.Join(lines, "\n")
	return strings.Trim(s, "\n")
}

// Load reads and parses a report file.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	return Parse(string(raw)), nil
}

// Save renders the document and writes it atomically-enough for the
// single-writer model: whole-file replace.
func (d *Document) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(d.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// Skeleton builds the fixed daily report scaffold: title, date line, and
// the given section headers in order with empty bodies.
func Skeleton(title, date string, headers []string) *Document {
	doc := &Document{
		Preamble: fmt.Sprintf("# %s\n- Date: %s", title, date),
	}
	for _, h := range headers {
		doc.Sections = append(doc.Sections, Section{Header: h})
	}
	return doc
}
