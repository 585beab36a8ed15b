package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"
	"github.com/voxelbrain/goptions"

	"github.com/wayneeseguin/symreg/internal/config"
	"github.com/wayneeseguin/symreg/internal/data"
	"github.com/wayneeseguin/symreg/internal/symlog"
	"github.com/wayneeseguin/symreg/internal/tracewriter"
	"github.com/wayneeseguin/symreg/pkg/symreg"
)

// Version holds the current version of symreg.
var Version = "(development)"

var getopts = func(o interface{}) {
	if err := goptions.Parse(o); err != nil {
		usage()
	}
}

var exit = func(code int) { os.Exit(code) }

var usage = func() {
	goptions.PrintHelp()
	exit(1)
}

func envFlag(name string) bool {
	v := os.Getenv(name)
	return v != "" && v != "0" && v != "false"
}

type fitOpts struct {
	Config string `goptions:"-c, --config, description='Path to YAML config file'"`
	X      string `goptions:"-x, --data, description='CSV file of input variable columns'"`
	Y      string `goptions:"-y, --target, description='CSV file of the single target column'"`
	Help   bool   `goptions:"--help, -h"`
}

type predictOpts struct {
	Config string `goptions:"-c, --config, description='Path to YAML config file'"`
	X      string `goptions:"-x, --data, description='CSV file of input variable columns'"`
	Y      string `goptions:"-y, --target, description='CSV file of the training target column'"`
	HeldX  string `goptions:"--held-out, description='CSV file of held-out input columns to predict against'"`
	Help   bool   `goptions:"--help, -h"`
}

type gendataOpts struct {
	Out    string `goptions:"--out, description='Output CSV path for input columns', obligatory"`
	OutY   string `goptions:"--out-y, description='Output CSV path for the target column', obligatory"`
	N      int    `goptions:"-n, --rows, description='Number of synthetic rows to generate'"`
	Seed   int64  `goptions:"--seed, description='RNG seed'"`
	Help   bool   `goptions:"--help, -h"`
}

func main() {
	var options struct {
		Debug   bool   `goptions:"-D, --debug, description='Enable debugging'"`
		Trace   bool   `goptions:"-T, --trace, description='Enable trace mode debugging (very verbose)'"`
		Version bool   `goptions:"-v, --version, description='Display version information'"`
		Color   string `goptions:"--color, description='Control color output (on/off/auto, default: auto)'"`
		Action  goptions.Verbs
		Fit     fitOpts     `goptions:"fit"`
		Predict predictOpts `goptions:"predict"`
		Gendata gendataOpts `goptions:"gendata"`
	}
	getopts(&options)

	if envFlag("SYMREG_DEBUG") || options.Debug {
		symlog.DebugOn = true
	}
	if envFlag("SYMREG_TRACE") || options.Trace {
		symlog.TraceOn = true
		symlog.DebugOn = true
	}

	if options.Version {
		fmt.Printf("%s - Version %s\n", os.Args[0], Version)
		exit(0)
		return
	}

	shouldColor := false
	switch options.Color {
	case "on":
		shouldColor = true
	case "off":
		shouldColor = false
	case "auto", "":
		shouldColor = isatty.IsTerminal(os.Stderr.Fd())
	default:
		fmt.Fprintf(os.Stderr, "Invalid --color option: %s. Must be 'on', 'off', or 'auto'.\n", options.Color)
		exit(1)
		return
	}
	ansi.Color(shouldColor)

	var err error
	switch options.Action {
	case "fit":
		err = runFit(options.Fit)
	case "predict":
		err = runPredict(options.Predict)
	case "gendata":
		err = runGendata(options.Gendata)
	default:
		usage()
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{%s}", err.Error()))
		exit(2)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func buildTree(cfg *config.Config, x data.Columns, y []float64) *symreg.Tree {
	tc := cfg.TreeConfig()
	tc.X = x
	tc.Y = y
	tc.RNG = rand.New(rand.NewSource(cfg.Seed))
	return symreg.NewTree(tc)
}

func progressWriter(verbose bool) func(phase string, frac float64) {
	if !verbose {
		return nil
	}
	useBar := isatty.IsTerminal(os.Stdout.Fd())
	return func(phase string, frac float64) {
		if useBar {
			filled := int(frac * 40)
			bar := ""
			for i := 0; i < 40; i++ {
				if i < filled {
					bar += "="
				} else {
					bar += " "
				}
			}
			fmt.Fprintf(os.Stdout, "\r%-9s [%s] %3.0f%%", phase, bar, frac*100)
			if frac >= 1 {
				fmt.Fprintln(os.Stdout)
			}
		} else {
			symlog.INFO("%s: %.0f%%", phase, frac*100)
		}
	}
}

func runFit(o fitOpts) error {
	if o.Help {
		usage()
		return nil
	}
	cfg, err := loadConfig(o.Config)
	if err != nil {
		return err
	}

	x, err := data.LoadCSV(o.X)
	if err != nil {
		return fmt.Errorf("loading input data: %w", err)
	}
	y, err := data.LoadSeriesCSV(o.Y)
	if err != nil {
		return fmt.Errorf("loading target data: %w", err)
	}

	tree := buildTree(cfg, x, y)

	trace, err := tracewriter.Open(cfg.TraceFile, cfg.ProgressFile, cfg.WriteFiles, cfg.ResetFiles)
	if err != nil {
		return err
	}
	defer trace.Close()

	dc := cfg.DriverConfig()
	dc.Trace = trace
	driver := symreg.NewDriver(tree, dc)

	if err := driver.Run(context.Background(), progressWriter(cfg.Verbose)); err != nil {
		return err
	}

	fmt.Printf("%s\n", tree.Pretty())
	fmt.Printf("bic=%g E=%g\n", tree.BIC, tree.E)
	return nil
}

func runPredict(o predictOpts) error {
	if o.Help {
		usage()
		return nil
	}
	cfg, err := loadConfig(o.Config)
	if err != nil {
		return err
	}

	x, err := data.LoadCSV(o.X)
	if err != nil {
		return fmt.Errorf("loading input data: %w", err)
	}
	y, err := data.LoadSeriesCSV(o.Y)
	if err != nil {
		return fmt.Errorf("loading target data: %w", err)
	}
	heldOut, err := data.LoadCSV(o.HeldX)
	if err != nil {
		return fmt.Errorf("loading held-out data: %w", err)
	}

	tree := buildTree(cfg, x, y)
	dc := cfg.DriverConfig()
	driver := symreg.NewDriver(tree, dc)

	predictRow := func(t *symreg.Tree) (float64, error) {
		preds, err := t.Predict(heldOut)
		if err != nil {
			return math.NaN(), err
		}
		sum := 0.0
		for _, p := range preds {
			sum += p
		}
		return sum / float64(len(preds)), nil
	}

	preds, err := driver.TracePredict(context.Background(), predictRow)
	if err != nil {
		return err
	}
	for i, p := range preds {
		fmt.Printf("%d %g\n", i, p)
	}
	return nil
}

func runGendata(o gendataOpts) error {
	if o.Help {
		usage()
		return nil
	}
	if o.N == 0 {
		o.N = 200
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	r := rand.New(rand.NewSource(o.Seed))

	x0 := make([]float64, o.N)
	x1 := make([]float64, o.N)
	x2 := make([]float64, o.N)
	y := make([]float64, o.N)
	for i := 0; i < o.N; i++ {
		x0[i] = r.Float64()*10 - 5
		x1[i] = r.Float64()*10 - 5
		x2[i] = r.Float64()*5 + 1
		noise := r.NormFloat64() * 0.5
		y[i] = 50*math.Sin(x0[i])/x2[i] - 4*x1[i] + 3 + noise
	}

	cols, err := data.NewColumns(map[string][]float64{"x0": x0, "x1": x1, "x2": x2})
	if err != nil {
		return err
	}
	if err := data.WriteCSV(o.Out, cols); err != nil {
		return err
	}
	return data.WriteSeriesCSV(o.OutY, "y", y)
}
