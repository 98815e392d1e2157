package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/diffusim/internal/process"
)

type ExportData struct {
	Process   string             `json:"process"`
	StepSize  float64            `json:"step_size"`
	Duration  float64            `json:"duration"`
	Particles int                `json:"particles"`
	Points    int                `json:"points"`
	Times     []float64          `json:"times"`
	Paths     [][]float64        `json:"paths"`
	Stats     map[string]float64 `json:"stats"`
}

func ExportJSON(path string, kind string, stepSize, duration float64, particles int, stats map[string]float64, paths []process.Path) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportJSON(file, kind, stepSize, duration, particles, stats, paths)
}

func ExportJSONStdout(kind string, stepSize, duration float64, particles int, stats map[string]float64, paths []process.Path) error {
	return exportJSON(os.Stdout, kind, stepSize, duration, particles, stats, paths)
}

func exportJSON(w io.Writer, kind string, stepSize, duration float64, particles int, stats map[string]float64, paths []process.Path) error {
	data := ExportData{
		Process:   kind,
		StepSize:  stepSize,
		Duration:  duration,
		Particles: particles,
		Stats:     stats,
		Paths:     make([][]float64, len(paths)),
	}
	if len(paths) > 0 {
		data.Times = paths[0].Times
		data.Points = len(paths[0].Times)
	}
	for i, p := range paths {
		data.Paths[i] = p.Values
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
