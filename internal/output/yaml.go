// internal/output/yaml.go
package output

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes records as a YAML sequence
type YAMLWriter struct {
	filename string
	file     *os.File
}

// NewYAMLWriter creates a YAML writer
func NewYAMLWriter(filename string) (*YAMLWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return &YAMLWriter{
		filename: filename,
		file:     file,
	}, nil
}

// Write writes the records
func (w *YAMLWriter) Write(records []map[string]interface{}) error {
	encoder := yaml.NewEncoder(w.file)
	defer encoder.Close()
	return encoder.Encode(records)
}

// Close closes the file
func (w *YAMLWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
