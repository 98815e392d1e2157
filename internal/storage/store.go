package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/diffusim/internal/process"
)

// Store persists simulation runs under a base directory, one subdirectory per
// run holding metadata.json and paths.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Process   string             `json:"process"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	StepSize  float64            `json:"step_size"`
	Duration  float64            `json:"duration"`
	Particles int                `json:"particles"`
	Stats     map[string]float64 `json:"stats"`
}

// Save writes one run directory. All paths must share the same time grid;
// paths.csv carries the grid in the first column and one column per path.
func (s *Store) Save(kind string, stepSize, duration float64, seed uint64, particles int, stats map[string]float64, paths []process.Path) (string, error) {
	runID := fmt.Sprintf("%s_%d", kind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Process:   kind,
		Timestamp: time.Now(),
		Seed:      seed,
		StepSize:  stepSize,
		Duration:  duration,
		Particles: particles,
		Stats:     stats,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if len(paths) == 0 {
		return runID, nil
	}

	csvPath := filepath.Join(runDir, "paths.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for i := range paths {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	grid := paths[0].Times
	for _, p := range paths {
		if len(p.Times) != len(grid) {
			return "", fmt.Errorf("path grids differ: %d vs %d points", len(p.Times), len(grid))
		}
	}

	for i := range grid {
		row := make([]string, 0, 1+len(paths))
		row = append(row, strconv.FormatFloat(grid[i], 'f', 6, 64))
		for _, p := range paths {
			row = append(row, strconv.FormatFloat(p.Values[i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPaths reads paths.csv back into per-path trajectories sharing one grid.
func (s *Store) LoadPaths(runID string) ([]process.Path, error) {
	csvPath := filepath.Join(s.baseDir, runID, "paths.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []process.Path{}, nil
	}

	numPaths := len(records[0]) - 1
	times := make([]float64, 0, len(records)-1)
	values := make([][]float64, numPaths)
	for i := range values {
		values[i] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != numPaths+1 {
			return nil, fmt.Errorf("row has %d fields, want %d", len(record), numPaths+1)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
		for j := 0; j < numPaths; j++ {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, err
			}
			values[j] = append(values[j], v)
		}
	}

	paths := make([]process.Path, numPaths)
	for i := range paths {
		paths[i] = process.Path{Times: times, Values: values[i]}
	}
	return paths, nil
}

func (s *Store) Delete(runID string) error {
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
