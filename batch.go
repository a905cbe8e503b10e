package satilp

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ConvertFolder registers the ILP encoding of every regular file in dir,
// in directory listing order. Sub-directories and other non-regular
// entries are skipped. A file that cannot be read or parsed is logged and
// skipped; it never aborts the batch.
func (r *Registry) ConvertFolder(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := r.ConvertFile(path); err != nil {
			log.Printf("skipping %s: %v", path, err)
		}
	}
	return nil
}

// LoadFolder registers every saved LP file in dir, with the same skipping
// rules as ConvertFolder.
func (r *Registry) LoadFolder(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := r.LoadFile(path); err != nil {
			log.Printf("skipping %s: %v", path, err)
		}
	}
	return nil
}

// SolveFolder runs the named backend over every regular file in dir that
// maps to a registered formula, one file at a time. Files that were never
// converted are logged and skipped, as are per-file solve errors.
func (e *Executor) SolveFolder(dir, backendName string, timeout time.Duration) error {
	if _, ok := e.backends.Lookup(backendName); !ok {
		return fmt.Errorf("solve folder %s: unknown backend %q", dir, backendName)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		id := ToFormulaID(entry.Name())
		if _, ok := e.reg.Formula(id); !ok {
			log.Printf("skipping %s: not converted", entry.Name())
			continue
		}
		if _, err := e.Solve(id, backendName, timeout); err != nil {
			log.Printf("skipping %s: %v", entry.Name(), err)
		}
	}
	return nil
}
