package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/logging"
	"github.com/Rana718/synthgen/internal/orchestrator"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// generationFlags are shared by generate and seed.
type generationFlags struct {
	rows        int
	seed        int64
	locale      string
	pii         string
	minChildren int
	maxChildren int
	dp          bool
	epsilon     float64
}

func (g *generationFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&g.rows, "rows", "n", 0, "Rows per root table (overrides generation.rows)")
	cmd.Flags().Int64Var(&g.seed, "seed", 0, "Fixed seed for a reproducible run")
	cmd.Flags().StringVar(&g.locale, "locale", "", "Locale for realistic values (en_IN, en_US)")
	cmd.Flags().StringVar(&g.pii, "pii", "", "Default PII strategy (realistic-fake, masked, redacted, scramble-column)")
	cmd.Flags().IntVar(&g.minChildren, "min-children", -1, "Minimum child rows per parent row")
	cmd.Flags().IntVar(&g.maxChildren, "max-children", -1, "Maximum child rows per parent row")
	cmd.Flags().BoolVar(&g.dp, "dp", false, "Add Laplace noise to numeric fields")
	cmd.Flags().Float64Var(&g.epsilon, "epsilon", 0, "Privacy budget for --dp")
}

// apply copies explicitly set flags over the loaded config.
func (g *generationFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Generation.Rows = g.rows
	}
	if flags.Changed("seed") {
		cfg.Generation.Seed = g.seed
		cfg.Generation.FixedSeed = true
	}
	if flags.Changed("locale") {
		cfg.Generation.Locale = g.locale
	}
	if flags.Changed("pii") {
		cfg.Generation.DefaultPII = g.pii
	}
	if flags.Changed("min-children") {
		cfg.Generation.MinChildren = g.minChildren
	}
	if flags.Changed("max-children") {
		cfg.Generation.MaxChildren = g.maxChildren
	}
	if flags.Changed("dp") {
		cfg.Generation.DifferentialPrivacy = g.dp
	}
	if flags.Changed("epsilon") {
		cfg.Generation.Epsilon = g.epsilon
	}
}

func loadConfig(cmd *cobra.Command, flags *generationFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags != nil {
		flags.apply(cmd, cfg)
	}
	if verbose {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	return logging.New(cfg.Logging)
}

func buildRequest(cfg *config.Config, doc *schema.Document) orchestrator.Request {
	return orchestrator.Request{
		Tables:        doc.Tables,
		Relationships: doc.Relationships,
		EdgeCases:     doc.EdgeCases,
		RootRows:      cfg.Generation.Rows,
		TableRows:     cfg.Generation.Tables,
		MinChildren:   cfg.Generation.MinChildren,
		MaxChildren:   cfg.Generation.MaxChildren,
		Context:       cfg.GenerationContext(),
	}
}

// generateDataset loads the schema named by cfg and runs the orchestrator.
func generateDataset(cfg *config.Config, log *zap.SugaredLogger) (*types.Dataset, []types.Advisory, error) {
	doc, err := schema.LoadFile(cfg.SchemaPath)
	if err != nil {
		return nil, nil, err
	}

	color.Cyan("🧬 Generating from %s", cfg.SchemaPath)
	ds, advisories, err := orchestrator.New(log).Generate(buildRequest(cfg, doc))
	if err != nil {
		printError(err)
		return nil, nil, err
	}
	return ds, advisories, nil
}

func printSummary(ds *types.Dataset) {
	color.Green("📊 Generated %d rows across %d tables (seed %d)", ds.TotalRows(), len(ds.TableNames()), ds.Seed())
	for _, name := range ds.TableNames() {
		fmt.Printf("   %-24s %6d rows\n", name, ds.RowCount(name))
	}
}

// printAdvisories groups advisories by kind. Sensitive-field notices print last.
func printAdvisories(advisories []types.Advisory) {
	if len(advisories) == 0 {
		return
	}
	sorted := make([]types.Advisory, len(advisories))
	copy(sorted, advisories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Kind != errors.ErrTypeSensitive && sorted[j].Kind == errors.ErrTypeSensitive
	})

	fmt.Println()
	for _, a := range sorted {
		if a.Kind == errors.ErrTypeSensitive {
			color.Cyan("🔒 %s", a)
			continue
		}
		color.Yellow("⚠️  %s", a)
	}
}

func printError(err error) {
	color.Red("❌ %v", err)
	if hint := suggestionLine(err); hint != "" {
		color.Yellow("💡 %s", hint)
	}
}

// suggestionLine joins the hints carried anywhere in err's chain.
func suggestionLine(err error) string {
	return strings.Join(errors.Suggestions(err), "; ")
}
