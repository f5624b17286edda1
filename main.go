package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/golang/geo/s2"
	"github.com/hauke96/sigolo/v2"

	"s2cells/cell"
	"s2cells/integrate"
	ownIo "s2cells/io"
	"s2cells/layer"
	"s2cells/rdf"
	"s2cells/relation"
	"s2cells/web"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging   string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version   VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Format    string      `help:"The format to write the RDF in. Options are ttl and nt." default:"ttl"`
	Output    string      `help:"The path the output files are written to." default:"./output" placeholder:"<output-path>"`
	MinLevel  int         `help:"The level where coverings start." default:"5"`
	MaxLevel  int         `help:"The level where coverings end." default:"5"`
	Tolerance float64     `help:"Tolerance in degrees used during spatial operations." default:"0.01"`
	BatchSize int         `help:"The number of cells to include in a single output file. Larger numbers (100000+) are recommended for levels 10 and higher." default:"100000"`
	Workers   int         `help:"The number of parallel workers." default:"4"`

	Generate struct {
		Level             int    `help:"Level at which the cells are generated." arg:""`
		TargetParentLevel int    `help:"The coarsest level the containment relations point to. Default is the immediate parent level." default:"-1"`
		Geometry          string `help:"Path to geometry files. If given, only cells covering these geometries are generated." placeholder:"<geometry-path>" optional:""`
	} `cmd:"" help:"Generates the cells of a whole subdivision level with their topological relations."`

	Integrate struct {
		Geometry string `help:"Path to the geometry files to integrate with the cell hierarchy." arg:"" placeholder:"<geometry-path>"`
		Compress bool   `help:"Use the cell hierarchy to write a compressed collection of relations at various levels."`
	} `cmd:"" help:"Computes the topological relations between the given geometries and the cell hierarchy."`

	Serve struct {
		Port string `help:"The port the HTTP server listens on." default:"8080"`
	} `cmd:"" help:"Starts an HTTP server to inspect cells and their relations."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("s2cells"),
		kong.Description("Materializes the S2 cell hierarchy and its topological relations as RDF."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	format, err := rdf.ParseFormat(cli.Format)
	sigolo.FatalCheck(err)

	config := cell.Config{
		MinLevel:         cli.MinLevel,
		MaxLevel:         cli.MaxLevel,
		ToleranceDegrees: cli.Tolerance,
	}

	switch ctx.Command() {
	case "generate <level>":
		err = generate(config, format)
		sigolo.FatalCheck(err)
	case "integrate <geometry>":
		err = integrateGeometries(config, format)
		sigolo.FatalCheck(err)
	case "serve":
		err = config.Validate()
		sigolo.FatalCheck(err)
		web.StartServer(cli.Serve.Port, config)
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}

func generate(config cell.Config, format rdf.Format) error {
	err := config.Validate()
	if err != nil {
		return err
	}

	generator := layer.NewGenerator(config)
	emitter := rdf.NewLevelWriter(cli.Output, format)
	options := layer.Options{
		Level:             cli.Generate.Level,
		TargetParentLevel: cli.Generate.TargetParentLevel,
		BatchSize:         cli.BatchSize,
		Workers:           cli.Workers,
	}

	if cli.Generate.Geometry == "" {
		return generator.Run(options, emitter)
	}

	// With a geometry source, only the cells covering those geometries are
	// generated instead of the full sphere. The covering uses the level
	// argument, the min/max flags only steer the integrate command.
	features, err := ownIo.LoadFeatures(cli.Generate.Geometry)
	if err != nil {
		return err
	}

	coveringConfig := config
	coveringConfig.MinLevel = cli.Generate.Level
	coveringConfig.MaxLevel = cli.Generate.Level

	integrator := integrate.NewIntegrator(coveringConfig)
	seen := map[s2.CellID]struct{}{}
	var cells []cell.Cell
	for _, feature := range features {
		candidates, err := integrator.CandidateCells(feature)
		if err != nil {
			return err
		}
		for _, candidate := range candidates {
			if _, ok := seen[candidate.ID]; ok {
				continue
			}
			seen[candidate.ID] = struct{}{}
			cells = append(cells, candidate)
		}
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].ID < cells[j].ID })
	return generator.EmitCells(cells, options, emitter)
}

func integrateGeometries(config cell.Config, format rdf.Format) error {
	if cli.Integrate.Compress {
		// Coverings may then use arbitrarily coarse cells, records implied by
		// an ancestor are removed below.
		config.MinLevel = 0
	}
	err := config.Validate()
	if err != nil {
		return err
	}

	features, err := ownIo.LoadFeatures(cli.Integrate.Geometry)
	if err != nil {
		return err
	}
	sigolo.Infof("Integrate %d features", len(features))

	integrator := integrate.NewIntegrator(config)
	records, err := integrator.IntegrateAll(features, cli.Workers)
	if err != nil {
		return err
	}

	outputName := strings.TrimSuffix(filepath.Base(cli.Integrate.Geometry), filepath.Ext(cli.Integrate.Geometry))
	if cli.Integrate.Compress {
		records = relation.Compress(records)
		outputName += "_compressed"
	}

	sigolo.Infof("Write %d relation records", len(records))
	return rdf.WriteRecordsFile(records, format, true, cli.Output, outputName)
}
