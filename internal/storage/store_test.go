package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/diffusim/internal/process"
)

func testPaths() []process.Path {
	times := []float64{0.0, 0.01, 0.02}
	return []process.Path{
		{Times: times, Values: []float64{0.0, 0.1, -0.05}},
		{Times: times, Values: []float64{0.0, -0.2, 0.3}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	stats := map[string]float64{"mean": 0.125, "msd": 0.04}
	runID, err := st.Save("bm", 0.01, 0.02, 42, 2, stats, testPaths())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Process != "bm" {
		t.Errorf("expected process 'bm', got '%s'", meta.Process)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Stats["mean"] != 0.125 {
		t.Errorf("expected mean 0.125, got %f", meta.Stats["mean"])
	}

	paths, err := st.LoadPaths(runID)
	if err != nil {
		t.Fatalf("load paths failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if len(paths[0].Times) != 3 {
		t.Errorf("expected 3 points, got %d", len(paths[0].Times))
	}
	if paths[1].Values[2] != 0.3 {
		t.Errorf("expected value 0.3, got %f", paths[1].Values[2])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("ou", 0.01, 1.0, 7, 1, nil, testPaths()[:1]); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("bm", 0.01, 0.02, 42, 2, nil, testPaths())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "paths.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		t.Error("paths.csv not created")
	}
}

func TestStoreMismatchedGrids(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	paths := []process.Path{
		{Times: []float64{0, 0.01}, Values: []float64{0, 1}},
		{Times: []float64{0, 0.01, 0.02}, Values: []float64{0, 1, 2}},
	}
	if _, err := st.Save("bm", 0.01, 0.02, 1, 2, nil, paths); err == nil {
		t.Error("expected error for mismatched grids")
	}
}

func TestStoreDelete(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("bm", 0.01, 0.02, 1, 2, nil, testPaths())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := st.Delete(runID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs after delete, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "run.json")

	stats := map[string]float64{"mean": 0.1}
	if err := ExportJSON(out, "bm", 0.01, 0.02, 2, stats, testPaths()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty export")
	}
}
