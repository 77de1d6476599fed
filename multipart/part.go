package multipart

import "os"

type partKind int

const (
	partText partKind = iota
	partFile
)

// Part is one field of a multipart body, either a text value or a file
// attachment. The two constructors are the only way to obtain one, so a
// part is always exactly one of the two variants.
type Part struct {
	kind  partKind
	field string

	// text variant
	value string

	// file variant
	source      FileSource
	contentType string
	filename    string
}

// Text returns a text part carrying a UTF-8 string value.
func Text(field, value string) Part {
	return Part{kind: partText, field: field, value: value}
}

// File returns a file part. contentType and filename may be empty; see
// Builder.AddFile for their defaults.
func File(field string, src FileSource, contentType, filename string) Part {
	return Part{kind: partFile, field: field, source: src, contentType: contentType, filename: filename}
}

// Field returns the form field name the part is submitted under.
func (p Part) Field() string {
	return p.field
}

// IsFile reports whether the part is the file variant.
func (p Part) IsFile() bool {
	return p.kind == partFile
}

// FileSource supplies a file part's content at build time.
type FileSource interface {
	// content returns the full file bytes.
	content() ([]byte, error)
	// name identifies the source in error messages.
	name() string
}

type bytesSource struct {
	label string
	data  []byte
}

// SourceBytes wraps in-memory content as a file source. The label is used
// only in error messages.
func SourceBytes(label string, data []byte) FileSource {
	return bytesSource{label: label, data: data}
}

func (s bytesSource) content() ([]byte, error) { return s.data, nil }
func (s bytesSource) name() string             { return s.label }

type pathSource struct {
	path string
}

// SourcePath references a file on disk. The file is read in full each time
// the builder serializes, so content changes between builds are observed.
func SourcePath(path string) FileSource {
	return pathSource{path: path}
}

func (s pathSource) content() ([]byte, error) { return os.ReadFile(s.path) }
func (s pathSource) name() string             { return s.path }
