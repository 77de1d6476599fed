// Package multipart encodes multipart/form-data request bodies.
//
// A Builder accumulates text and file parts in insertion order and
// serializes them into a single byte buffer delimited by a boundary token
// generated once per builder. The produced Body carries the buffer together
// with the Content-Type header value the transport must send alongside it.
//
// The wire format reproduces the SpeleoDB Ariane plugin's encoder byte for
// byte, including its hard-coded quote-CRLF disposition terminator. Servers
// that interoperate with the plugin depend on these exact bytes; do not
// normalize them.
package multipart

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
)

const (
	crlf = "\r\n"

	// quoteCRLF terminates every Content-Disposition line. The disposition
	// emit leaves its last quote open; this literal closes it.
	quoteCRLF = "\"" + crlf

	dispositionPrefix = `Content-Disposition: form-data; name="`
	filenameClause    = `"; filename="`

	// DefaultContentType is used for file parts that do not declare one.
	DefaultContentType = "application/octet-stream"

	boundaryPrefix    = "Boundary"
	contentTypePrefix = "multipart/form-data; boundary="
)

// Builder accumulates parts and serializes them into a Body.
//
// A Builder is not safe for concurrent use; separate Builder instances are
// fully independent and each carries its own boundary. File content is read
// at Build time, not at AddFile time, so calling Build twice can observe
// different file bytes.
type Builder struct {
	boundary string
	parts    []Part
}

// NewBuilder returns a Builder with a freshly generated boundary.
func NewBuilder() *Builder {
	return &Builder{boundary: newBoundary()}
}

// newBoundary produces a token of the form Boundary<128-bit hex identifier>.
// Boundary uniqueness across concurrent requests rests on the identifier's
// entropy; part content is never scanned for collisions.
func newBoundary() string {
	return boundaryPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Boundary returns the builder's boundary token.
func (b *Builder) Boundary() string {
	return b.boundary
}

// AddPart appends a part to the body in insertion order.
func (b *Builder) AddPart(p Part) *Builder {
	b.parts = append(b.parts, p)
	return b
}

// AddText appends a text part. An empty value is valid and produces an
// empty content segment.
func (b *Builder) AddText(field, value string) *Builder {
	return b.AddPart(Text(field, value))
}

// AddFile appends a file part. An empty contentType falls back to
// DefaultContentType at build time; an empty filename omits the filename
// clause from the disposition line.
func (b *Builder) AddFile(field string, src FileSource, contentType, filename string) *Builder {
	return b.AddPart(File(field, src, contentType, filename))
}

// Build serializes all parts in insertion order, appends the closing
// delimiter, and returns the finished Body. A builder with zero parts
// yields a body of exactly "--<boundary>--".
//
// Failures are always one of FileReadError, PartWriteError, or BodyError.
func (b *Builder) Build() (Body, error) {
	var buf bytes.Buffer
	for _, p := range b.parts {
		if err := writePart(&buf, b.boundary, p); err != nil {
			return Body{}, categorize(p, err)
		}
	}
	if _, err := buf.WriteString("--" + b.boundary + "--"); err != nil {
		return Body{}, &BodyError{Err: err}
	}
	return Body{boundary: b.boundary, buf: buf.Bytes()}, nil
}

func writePart(w io.Writer, boundary string, p Part) error {
	if err := writeString(w, "--"+boundary+crlf); err != nil {
		return err
	}

	// Disposition line. The name quote stays open; for file parts with a
	// filename the clause reopens one. quoteCRLF closes whichever is open
	// and ends the line.
	if err := writeString(w, dispositionPrefix+p.field); err != nil {
		return err
	}
	if p.kind == partFile && p.filename != "" {
		if err := writeString(w, filenameClause+p.filename); err != nil {
			return err
		}
	}
	if err := writeString(w, quoteCRLF); err != nil {
		return err
	}

	switch p.kind {
	case partFile:
		ct := p.contentType
		if ct == "" {
			ct = DefaultContentType
		}
		if err := writeString(w, "Content-Type: "+ct+crlf+crlf); err != nil {
			return err
		}
		data, err := p.source.content()
		if err != nil {
			return &FileReadError{Name: p.source.name(), Err: err}
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	case partText:
		if err := writeString(w, crlf); err != nil {
			return err
		}
		if err := writeString(w, p.value); err != nil {
			return err
		}
	}

	return writeString(w, crlf)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// categorize wraps a serialization failure so Build always surfaces one of
// the typed errors. File read failures pass through already tagged with the
// file name; anything else while writing a part is attributed to its field.
func categorize(p Part, err error) error {
	var fr *FileReadError
	if errors.As(err, &fr) {
		return err
	}
	return &PartWriteError{Field: p.field, Err: err}
}

// Body is the immutable build result: the final byte buffer plus the
// boundary it was framed with.
type Body struct {
	boundary string
	buf      []byte
}

// Bytes returns the encoded request body.
func (b Body) Bytes() []byte {
	return b.buf
}

// Boundary returns the boundary token used by every delimiter line.
func (b Body) Boundary() string {
	return b.boundary
}

// ContentType returns the value for the request's Content-Type header.
func (b Body) ContentType() string {
	return contentTypePrefix + b.boundary
}

// Len returns the body length in bytes, for Content-Length.
func (b Body) Len() int {
	return len(b.buf)
}
