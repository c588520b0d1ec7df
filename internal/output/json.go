// internal/output/json.go
package output

import (
	"encoding/json"
	"io"
	"os"
)

// JSONWriter writes records as an indented JSON array
type JSONWriter struct {
	filename string
	file     *os.File
	out      io.Writer
}

// NewJSONWriter creates a JSON writer targeting a file
func NewJSONWriter(filename string) (*JSONWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		filename: filename,
		file:     file,
		out:      file,
	}, nil
}

// NewJSONStreamWriter creates a JSON writer targeting an arbitrary
// stream, used by the stdout format
func NewJSONStreamWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out}
}

// Write writes the records
func (w *JSONWriter) Write(records []map[string]interface{}) error {
	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// WriteValue writes an arbitrary value, used for result envelopes that
// are richer than flat records
func (w *JSONWriter) WriteValue(value interface{}) error {
	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// Close closes the underlying file, if any
func (w *JSONWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
