// Package main provides the CLI entry point for tapestudio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/tapestudio/pkg/adapters/ggrenderer"
	"github.com/user/tapestudio/pkg/adapters/logger"
	"github.com/user/tapestudio/pkg/adapters/osfilesystem"
	"github.com/user/tapestudio/pkg/config"
	"github.com/user/tapestudio/pkg/pipeline"
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
	"github.com/user/tapestudio/pkg/script"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Render    RenderCmd    `cmd:"" help:"Render one tape configuration to surface maps and a scene description."`
	Run       RunCmd       `cmd:"" help:"Replay a YAML session script of configurator steps."`
	Generate  GenerateCmd  `cmd:"" help:"Write a single procedural texture."`
	Materials MaterialsCmd `cmd:"" help:"List materials and product types."`
	Products  ProductsCmd  `cmd:"" help:"List catalog products."`
	Version   VersionCmd   `cmd:"" help:"Show version information."`
}

// CommonFlags are shared by the commands that build a configurator.
type CommonFlags struct {
	Config string `short:"c" type:"path" help:"YAML configuration file."`

	// Output options
	Output     *string `short:"o" help:"Output directory."`
	Format     string  `short:"f" help:"Surface map format (png, jpeg, webp)."`
	Quality    *int    `short:"q" help:"JPEG quality (1-100)."`
	Card       bool    `help:"Also capture a product card (requires Chrome)."`
	NoSummary  bool    `help:"Do not write summary.md."`
	ChromePath string  `help:"Path to Chrome executable for the product card."`

	// Synthesis
	Seed *uint64 `help:"Seed for procedural textures (0 = random)."`

	// Debug options
	Debug    bool    `short:"d" help:"Enable debug output."`
	DebugDir *string `help:"Directory for debug output."`

	// Logging options
	LogLevel *string `short:"l" help:"Log level (debug, info, warn, error). Overrides log_level from the config file."`
	Quiet    bool    `short:"Q" help:"Suppress all log output."`
}

// load builds the configuration from the optional file and flag overrides.
func (f *CommonFlags) load() (config.Config, error) {
	cfg := config.Defaults()
	if f.Config != "" {
		var err error
		if cfg, err = config.LoadFromFile(f.Config); err != nil {
			return cfg, err
		}
	}

	if f.Output != nil {
		cfg.OutputDir = *f.Output
	}
	if f.Format != "" {
		cfg.Format = f.Format
	}
	if f.Quality != nil {
		cfg.Quality = *f.Quality
	}
	if f.Card {
		cfg.Card = true
	}
	if f.NoSummary {
		cfg.Summary = false
	}
	if f.ChromePath != "" {
		cfg.ChromePath = f.ChromePath
	}
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.Debug {
		cfg.Debug = true
	}
	if f.DebugDir != nil {
		cfg.DebugDir = *f.DebugDir
	}
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}
	return cfg, nil
}

// logger builds the console logger for the merged configuration.
func (f *CommonFlags) logger(cfg config.Config) ports.Logger {
	if f.Quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
}

// RenderCmd defines the render subcommand.
type RenderCmd struct {
	CommonFlags `embed:""`

	Product     *string `short:"p" help:"Catalog product preset."`
	ProductType *string `short:"t" help:"Product type (adhesive, gorilla, eco, filament, printed)."`
	Material    *string `short:"m" help:"Material identifier."`
	Text        string  `help:"Custom text for printed straps."`
	Upload      string  `short:"u" type:"path" help:"Image to apply to the tape."`
	Background  *string `short:"b" help:"Viewport background color (hex)."`
}

// RunCmd defines the run subcommand.
type RunCmd struct {
	CommonFlags `embed:""`

	Script string `arg:"" type:"path" help:"Session script (YAML)."`
}

// GenerateCmd defines the generate subcommand.
type GenerateCmd struct {
	Family  string `arg:"" enum:"kraft,eco-kraft,filament,strapping-base,printed-text,plastic,roughness,normal,cardboard" help:"Texture family."`
	Output  string `short:"o" required:"" help:"Output image file (.png, .jpg or .webp)."`
	Text    string `help:"Text for the printed-text family."`
	Seed    uint64 `help:"Seed (0 = random)."`
	Quality int    `short:"q" default:"90" help:"JPEG quality (1-100)."`
}

// MaterialsCmd lists the material table.
type MaterialsCmd struct{}

// ProductsCmd lists the catalog.
type ProductsCmd struct{}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("tapestudio"),
		kong.Description(l10n.T("Tape and strap product configurator: procedural textures, uploads and material policy.")),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// Run executes the render command.
func (cmd *RenderCmd) Run() error {
	cfg, err := cmd.load()
	if err != nil {
		return err
	}
	cmd.applySelection(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cmd.logger(cfg)
	ctx, cancel := signalContext(log)
	defer cancel()

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	if cmd.Upload != "" {
		if err := a.upload(ctx, cmd.Upload); err != nil {
			return err
		}
	}
	if cmd.Text != "" {
		if err := a.orch.SetCustomText(cmd.Text); err != nil {
			return err
		}
	}
	return a.finish(ctx)
}

// applySelection copies the selection flags into cfg. A product type or
// material flag drops a preset coming from the config file.
func (cmd *RenderCmd) applySelection(cfg *config.Config) {
	if cmd.Product != nil {
		cfg.Product = *cmd.Product
	}
	if cmd.ProductType != nil {
		cfg.ProductType = *cmd.ProductType
		cfg.Material = ""
		if cmd.Product == nil {
			cfg.Product = ""
		}
	}
	if cmd.Material != nil {
		cfg.Material = *cmd.Material
		if cmd.Product == nil {
			cfg.Product = ""
		}
	}
	if cmd.Background != nil {
		cfg.Background = *cmd.Background
	}
}

// Run executes the run command.
func (cmd *RunCmd) Run() error {
	cfg, err := cmd.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cmd.logger(cfg)
	ctx, cancel := signalContext(log)
	defer cancel()

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	sc, err := script.Load(a.fs, cmd.Script)
	if err != nil {
		return err
	}

	runner := script.NewRunner(a.orch, a.fs, log)
	runner.OnStep = func(res script.StepResult) {
		status := l10n.T("ok")
		if !res.Passed {
			status = l10n.F("failed: %s", res.Err)
		}
		fmt.Printf("%3d  %-13s %-24s %s\n", res.Index, res.Action, res.Arg, status)
	}

	results, runErr := runner.Run(ctx, sc)
	log.Info("Script finished: %d steps", len(results))

	if err := a.finish(ctx); err != nil {
		return err
	}
	return runErr
}

// Run executes the generate command.
func (cmd *GenerateCmd) Run() error {
	log := logger.NewConsole(ports.LevelWarn)
	renderer := ggrenderer.New()

	res, err := newSynth(renderer, cmd.Seed, log).Execute(context.Background(), pipeline.SynthInput{
		Family: raster.Family(cmd.Family),
		Text:   cmd.Text,
	})
	if err != nil {
		return err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(cmd.Output), "."))
	data, err := renderer.EncodeImage(res.Texture.Raster.Image(), ports.ParseImageFormat(ext), cmd.Quality)
	if err != nil {
		return err
	}
	if err := osfilesystem.New().WriteFile(cmd.Output, data); err != nil {
		return err
	}
	fmt.Println(l10n.F("Wrote %s (%dx%d)", cmd.Output, res.Texture.Width(), res.Texture.Height()))
	return nil
}

// Run executes the materials command.
func (cmd *MaterialsCmd) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, l10n.T("MATERIAL\tCOLOR\tTRANSMISSION\tROUGHNESS\tOPACITY"))
	for _, id := range policy.Materials() {
		m := policy.Resolve(id)
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\n", m.ID, m.ColorHex, m.Transmission, m.Roughness, m.Opacity)
	}
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, l10n.T("TYPE\tNAME\tMATERIALS\tUPLOAD\tTEXT"))
	for _, id := range policy.ProductTypes() {
		pt := policy.MustResolveProductType(id)
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n", pt.ID, pt.DisplayName, strings.Join(pt.AllowedMaterials, ","), pt.AllowsTextureUpload, pt.AllowsCustomText)
	}
	return w.Flush()
}

// Run executes the products command.
func (cmd *ProductsCmd) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, l10n.T("PRODUCT\tNAME\tTYPE\tMATERIAL\tPRICE"))
	for _, p := range policy.Products() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Type, p.Material, p.Price())
	}
	return w.Flush()
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("tapestudio version %s", version))
	return nil
}
