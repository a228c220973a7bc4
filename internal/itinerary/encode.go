package itinerary

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

type report struct {
	Itinerary `yaml:",inline"`
	Status    string    `json:"status" yaml:"status"`
	Transfers int       `json:"transfers" yaml:"transfers"`
	Segments  []Segment `json:"segments" yaml:"segments"`
}

// Encode writes the itinerary in the given format. Structured formats also
// carry the line segments and the transfer count.
func (it *Itinerary) Encode(w io.Writer, f Format) error {
	if f == FormatText || f == "" {
		_, err := io.WriteString(w, it.Text())
		return err
	}
	return encode(w, f, report{
		Status:    StatusFound,
		Transfers: it.Transfers(),
		Segments:  it.Segments(),
		Itinerary: *it,
	})
}

func (o *Outcome) Encode(w io.Writer, f Format) error {
	if f == FormatText || f == "" {
		_, err := fmt.Fprintln(w, o.Message)
		return err
	}
	return encode(w, f, o)
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}
