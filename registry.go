package satilp

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// A Registry maps formula identities to their ILP encodings. Conversion is
// idempotent per identity: the first Encode or LoadLP for an ID wins and
// later calls for the same ID return the existing entry untouched.
//
// A Registry also owns the backend-native Problem built from each entry.
// It assumes a single orchestrating goroutine; concurrent callers must
// serialize access externally.
type Registry struct {
	cfg      Config
	formulas map[FormulaID]*Formula
	problems map[FormulaID]*Problem
	order    []FormulaID
}

// NewRegistry returns an empty registry using the given folder layout.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:      cfg,
		formulas: make(map[FormulaID]*Formula),
		problems: make(map[FormulaID]*Problem),
	}
}

// Encode parses DIMACS input and registers its ILP encoding under the
// identity derived from name. If that identity is already registered the
// call is a logged no-op returning the existing entry. A parse failure
// registers nothing.
func (r *Registry) Encode(name string, rd io.Reader) (*Formula, error) {
	id := ToFormulaID(name)
	if f, ok := r.formulas[id]; ok {
		log.Printf("warning: %s has already been converted", id)
		return f, nil
	}
	hdr, clauses, err := ParseDIMACS(rd)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}
	f := Encode(hdr, clauses)
	r.insert(id, f)
	return f, nil
}

// LoadLP registers a previously saved LP artifact under the same identity
// its source would get, so loading a save and converting the source are
// interchangeable entry points into the same slot.
func (r *Registry) LoadLP(name string, rd io.Reader) (*Formula, error) {
	id := ToFormulaID(name)
	if f, ok := r.formulas[id]; ok {
		log.Printf("warning: %s has already been read", id)
		return f, nil
	}
	f, err := ParseLP(rd)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	r.insert(id, f)
	return f, nil
}

func (r *Registry) insert(id FormulaID, f *Formula) {
	r.formulas[id] = f
	r.order = append(r.order, id)
}

// Formula returns the registered formula for id, if any.
func (r *Registry) Formula(id FormulaID) (*Formula, bool) {
	f, ok := r.formulas[id]
	return f, ok
}

// IDs lists the registered identities in registration order.
func (r *Registry) IDs() []FormulaID {
	return append([]FormulaID(nil), r.order...)
}

// ConvertFile opens a DIMACS file and registers its encoding.
func (r *Registry) ConvertFile(path string) (*Formula, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.Encode(filepath.Base(path), f)
}

// LoadFile opens a saved LP file and registers it.
func (r *Registry) LoadFile(path string) (*Formula, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.LoadLP(filepath.Base(path), f)
}

// SaveFormula writes the LP text for id into the configured save folder,
// creating the folder if needed. An existing file is never overwritten;
// the save becomes a logged no-op.
func (r *Registry) SaveFormula(id FormulaID) error {
	f, ok := r.formulas[id]
	if !ok {
		return fmt.Errorf("save %s: unknown formula", id)
	}
	if !f.Converted {
		log.Printf("warning: cannot save unconverted formula %s", id)
		return nil
	}
	if err := os.MkdirAll(r.cfg.SaveDir, 0o755); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	target := filepath.Join(r.cfg.SaveDir, string(id))
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			log.Printf("warning: %s already exists; keeping the previous save", target)
			return nil
		}
		return fmt.Errorf("save %s: %w", id, err)
	}
	if err := WriteLP(file, f); err != nil {
		file.Close()
		return fmt.Errorf("save %s: %w", id, err)
	}
	return file.Close()
}

// SaveAll saves every registered formula, skipping and logging the ones
// that cannot be written.
func (r *Registry) SaveAll() {
	for _, id := range r.order {
		if err := r.SaveFormula(id); err != nil {
			log.Printf("skipping save of %s: %v", id, err)
		}
	}
}
