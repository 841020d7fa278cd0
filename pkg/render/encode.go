package render

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Formats accepted by Encode.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// Encode writes view in the named format. Unknown formats are an error.
func Encode(w io.Writer, view View, format string) error {
	switch format {
	case "", FormatText:
		return Text(w, view)
	case FormatJSON:
		return JSON(w, view)
	case FormatYAML:
		return YAML(w, view)
	case FormatHTML:
		return HTML(w, view, PageData{})
	default:
		return &UnknownFormatError{Format: format}
	}
}

// UnknownFormatError is returned by Encode for unsupported formats.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format: " + e.Format
}

// JSON writes the view as indented JSON.
func JSON(w io.Writer, view View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

// YAML writes the view as a YAML document.
func YAML(w io.Writer, view View) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return err
	}
	return enc.Close()
}
