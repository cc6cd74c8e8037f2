package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// profiler owns the optional CPU and heap profiles of one run.
type profiler struct {
	cpu     *os.File
	memPath string
}

func (p *profiler) startCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	p.cpu = f
	return nil
}

// stop ends the CPU profile and writes the heap profile, if either was requested.
func (p *profiler) stop() error {
	var errs []error
	if p.cpu != nil {
		pprof.StopCPUProfile()
		if err := p.cpu.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cpu profile %s: %w", p.cpu.Name(), err))
		}
		p.cpu = nil
	}
	if p.memPath != "" {
		errs = append(errs, writeMemProfile(p.memPath))
		p.memPath = ""
	}
	return errors.Join(errs...)
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Join(fmt.Errorf("write mem profile %s: %w", path, err), f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
