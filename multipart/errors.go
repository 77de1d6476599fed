package multipart

import "fmt"

// FileReadError reports a failure reading a file part's content. Name is
// the offending file's name or label.
type FileReadError struct {
	Name string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("multipart: read file %q: %v", e.Name, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// PartWriteError reports a failure serializing one part. Field is the form
// field name of the part being written.
type PartWriteError struct {
	Field string
	Err   error
}

func (e *PartWriteError) Error() string {
	return fmt.Sprintf("multipart: write part %q: %v", e.Field, e.Err)
}

func (e *PartWriteError) Unwrap() error { return e.Err }

// BodyError wraps any build failure not attributable to a single part.
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("multipart: assemble body: %v", e.Err)
}

func (e *BodyError) Unwrap() error { return e.Err }
