package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/orrery/internal/sim"
)

type TraceExport struct {
	Body   string    `json:"body"`
	Speed  float64   `json:"speed"`
	Frames int       `json:"frames"`
	Angles []float64 `json:"angles"`
}

func exportData(traces []sim.Trace) []TraceExport {
	data := make([]TraceExport, len(traces))
	for i, tr := range traces {
		data[i] = TraceExport{
			Body:   tr.Body,
			Speed:  tr.Speed,
			Frames: len(tr.Angles),
			Angles: tr.Angles,
		}
	}
	return data
}

// ExportJSON writes traces to path, or to w when path is empty.
func ExportJSON(path string, w io.Writer, traces []sim.Trace) error {
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(traces))
}
