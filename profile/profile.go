package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler writes the profiles enabled in its [Config] around one command.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile *os.File
	Config
}

// Start starts CPU profiling if enabled. Call [Profiler.Stop] when the
// profiled work is complete.
func (p *Profiler) Start() error {
	if p.MemProfileRate > 0 && (p.HeapProfile != "" || p.AllocsProfile != "") {
		runtime.MemProfileRate = p.MemProfileRate
	}

	if p.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("starting CPU profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop stops CPU profiling and writes the heap and allocs profiles.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		p.cpuFile = nil

		if err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}
	}

	for name, path := range map[string]string{"heap": p.HeapProfile, "allocs": p.AllocsProfile} {
		if path == "" {
			continue
		}

		err := writeProfile(name, path)
		if err != nil {
			return err
		}
	}

	return nil
}

// Run calls fn between [Profiler.Start] and [Profiler.Stop]. Profiles are
// written even when fn fails.
func (p *Profiler) Run(fn func() error) error {
	err := p.Start()
	if err != nil {
		return err
	}

	return errors.Join(fn(), p.Stop())
}

func writeProfile(name, path string) error {
	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	if name == "heap" {
		// Up-to-date heap statistics.
		runtime.GC()
	}

	err = pprof.Lookup(name).WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("write %s profile: %w", name, err)
	}

	return nil
}
