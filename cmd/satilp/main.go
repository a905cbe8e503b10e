package main

import (
	"io"
	"log"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/olekukonko/tablewriter"

	"github.com/lgbarrere/satilp"
)

type args struct {
	Folder  string        `arg:"positional" help:"folder of DIMACS CNF files (default: the configured data folder)"`
	Config  string        `arg:"-c,--config" help:"JSON configuration file"`
	Solver  []string      `arg:"-s,--solver,separate" help:"backend to solve with (repeatable; default: every registered backend)"`
	Timeout time.Duration `arg:"-t,--timeout" help:"per-solve time limit (0 = none)"`
	Save    bool          `arg:"--save" help:"save the converted LP files"`
	Load    bool          `arg:"--load" help:"load previously saved LP files instead of converting"`
	Verbose bool          `arg:"-v,--verbose" help:"dump each outcome as it is recorded"`
}

func (args) Description() string {
	return "satilp converts DIMACS CNF formulas to 0/1 integer linear programs and solves them with external or embedded solver backends."
}

func main() {
	log.SetFlags(0)
	var a args
	arg.MustParse(&a)

	cfg := satilp.DefaultConfig()
	if a.Config != "" {
		var err error
		cfg, err = satilp.LoadConfig(a.Config)
		if err != nil {
			log.Fatal(err)
		}
	}
	if a.Folder == "" {
		if a.Load {
			a.Folder = cfg.SaveDir
		} else {
			a.Folder = cfg.DataDir
		}
	}

	reg := satilp.NewRegistry(cfg)
	backends := satilp.NewBackendRegistry()
	if err := backends.Register(satilp.GophersatBackend{}); err != nil {
		log.Fatal(err)
	}
	if err := backends.Register(satilp.GiniBackend{}); err != nil {
		log.Fatal(err)
	}
	for _, bc := range cfg.Backends {
		b, err := bc.Backend()
		if err != nil {
			log.Fatal(err)
		}
		if err := backends.Register(b); err != nil {
			log.Printf("skipping backend %s: %v", bc.Name, err)
		}
	}

	if a.Load {
		if err := reg.LoadFolder(a.Folder); err != nil {
			log.Fatal(err)
		}
	} else {
		if err := reg.ConvertFolder(a.Folder); err != nil {
			log.Fatal(err)
		}
	}
	if a.Save {
		reg.SaveAll()
	}

	runner := satilp.NewExecutor(reg, backends)
	runner.Verbose = a.Verbose
	names := a.Solver
	if len(names) == 0 {
		names = backends.List()
	}
	for _, name := range names {
		if err := runner.SolveFolder(a.Folder, name, a.Timeout); err != nil {
			log.Fatal(err)
		}
	}

	if err := runner.SaveResults(); err != nil {
		log.Fatal(err)
	}
	printTable(os.Stdout, runner)
}

func printTable(w io.Writer, runner *satilp.Executor) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Solver", "Status", "Time"})
	for _, entry := range runner.Results() {
		table.Append([]string{
			string(entry.ID),
			entry.Backend,
			entry.Outcome.Status.String(),
			entry.Outcome.ElapsedLabel(),
		})
	}
	table.Render()
}
