package vsfixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"vsforge/internal/vsir"
)

// WireFixture is the on-disk unit the CLI reads: one program plus the
// job configuration that names its emitted class and output file
// (spec.md §6).
type WireFixture struct {
	Config  vsir.JobConfig
	Program WireProgram
}

// Load decodes a fixture from path.
func Load(path string) (*vsir.Program, vsir.JobConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vsir.JobConfig{}, fmt.Errorf("vsfixture: open %s: %w", path, err)
	}
	defer f.Close()

	var w WireFixture
	if err := msgpack.NewDecoder(f).Decode(&w); err != nil {
		return nil, vsir.JobConfig{}, fmt.Errorf("vsfixture: decode %s: %w", path, err)
	}
	return FromWireProgram(w.Program), w.Config, nil
}

// Save encodes a fixture to path, writing atomically (grounded on the
// source's own disk-cache write pattern: write to a sibling temp file,
// then rename over the destination).
func Save(path string, program *vsir.Program, cfg vsir.JobConfig) error {
	w := WireFixture{Config: cfg, Program: ToWireProgram(program)}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("vsfixture: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "fixture-*.mp.tmp")
	if err != nil {
		return fmt.Errorf("vsfixture: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(tmp).Encode(&w); err != nil {
		tmp.Close()
		return fmt.Errorf("vsfixture: encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("vsfixture: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("vsfixture: rename into place: %w", err)
	}
	return nil
}
