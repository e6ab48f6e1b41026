package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rasterkit/internal/algorithms"
	"rasterkit/internal/config"
	"rasterkit/internal/logger"
	"rasterkit/internal/models"
	"rasterkit/internal/processing/engine"
	"rasterkit/internal/raster"
	"rasterkit/internal/services"
)

const AppVersion = "1.0.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type options struct {
	logLevel string
	recipe   string
	filters  []string
	params   []string
	workers  int
	decoder  string
	output   string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "rasterkit",
		Short:         "Apply spatial filters to raster images",
		Version:       AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(newApplyCommand(opts), newFiltersCommand(opts), newPixelCommand(opts))
	return root
}

func newApplyCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <input> <output>",
		Short: "Run a recipe or a list of filters on an image",
		Example: `  rasterkit apply in.png out.png --filter gaussian --param gaussian.sigma=2
  rasterkit apply in.jpg edges.png --recipe canny.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd.Context(), opts, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.recipe, "recipe", "r", "", "YAML or TOML recipe file")
	flags.StringSliceVarP(&opts.filters, "filter", "f", nil, "filter to apply, repeatable, in order")
	flags.StringArrayVarP(&opts.params, "param", "p", nil, "filter parameter as filter.key=value")
	flags.IntVar(&opts.workers, "workers", 0, "row band workers (default GOMAXPROCS)")
	flags.StringVar(&opts.decoder, "decoder", "go", "image decoder: go or opencv")
	return cmd
}

func newFiltersCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List available filters and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := algorithms.NewManager(nil)
			out := cmd.OutOrStdout()
			for _, name := range manager.Names() {
				desc, _ := manager.Describe(name)
				defaults, _ := manager.Defaults(name)
				fmt.Fprintf(out, "%-10s %s%s\n", name, desc, formatDefaults(defaults))
			}
			return nil
		},
	}
}

func newPixelCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pixel <input> <x> <y>",
		Short: "Print the samples of one pixel",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			return runPixel(cmd.Context(), opts, cmd.OutOrStdout(), args[0], x, y)
		},
	}
	cmd.Flags().StringVar(&opts.decoder, "decoder", "go", "image decoder: go or opencv")
	return cmd
}

func runPixel(ctx context.Context, opts *options, out io.Writer, input string, x, y int) error {
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	log := logger.NewConsoleLogger(level)

	decoder, err := services.ParseDecoder(opts.decoder)
	if err != nil {
		return err
	}

	image := models.NewImage()
	if err := services.NewImageService(image, log).LoadImage(ctx, input, decoder); err != nil {
		return err
	}

	channels := image.Current().Channels()
	samples := make([]string, channels)
	for c := 0; c < channels; c++ {
		v, err := image.Sample(x, y, c)
		if err != nil {
			return err
		}
		samples[c] = strconv.FormatFloat(v, 'f', -1, 64)
	}

	fmt.Fprintf(out, "%d,%d: %s\n", x, y, strings.Join(samples, " "))
	return nil
}

func runApply(ctx context.Context, opts *options, input, output string) error {
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	log := logger.NewConsoleLogger(level)

	recipe, err := buildRecipe(opts)
	if err != nil {
		log.Error("CLI", err, nil)
		return err
	}

	if recipe.LogLevel != "" && opts.recipe != "" {
		if level, err = logger.ParseLevel(recipe.LogLevel); err == nil {
			log = logger.NewConsoleLogger(level)
		}
	}

	decoder, err := services.ParseDecoder(opts.decoder)
	if err != nil {
		return err
	}

	engine.SetWorkers(recipe.Workers)
	defer func() {
		log.Debug("CLI", "snapshot buffers released", map[string]interface{}{
			"count": raster.DrainSnapshots(),
		})
	}()

	image := models.NewImage()
	imageService := services.NewImageService(image, log)
	processingService := services.NewProcessingService(algorithms.NewManager(log), image, log)

	if err := imageService.LoadImage(ctx, input, decoder); err != nil {
		log.Error("CLI", err, map[string]interface{}{"input": input})
		return err
	}

	if err := processingService.Process(ctx, recipe); err != nil {
		log.Error("CLI", err, map[string]interface{}{"recipe": opts.recipe})
		return err
	}

	return imageService.SaveImage(output)
}

// buildRecipe loads the recipe file when given, then appends any filters
// from the command line.
func buildRecipe(opts *options) (*config.Recipe, error) {
	recipe := config.Default()
	if opts.recipe != "" {
		loaded, err := config.Load(opts.recipe)
		if err != nil {
			return nil, err
		}
		recipe = loaded
	}

	params, err := parseParams(opts.params)
	if err != nil {
		return nil, err
	}

	for _, name := range opts.filters {
		recipe.Steps = append(recipe.Steps, config.Step{Filter: name, Params: params[name]})
	}

	if opts.workers > 0 {
		recipe.Workers = opts.workers
	}
	if recipe.Workers < 1 {
		recipe.Workers = runtime.GOMAXPROCS(0)
	}

	if len(recipe.Steps) == 0 && recipe.Grayscale == "" {
		return nil, fmt.Errorf("nothing to do: pass --recipe or --filter")
	}
	return recipe, nil
}

// parseParams reads filter.key=value pairs. Values are decoded as YAML
// scalars so numbers keep their type.
func parseParams(raw []string) (map[string]map[string]interface{}, error) {
	out := make(map[string]map[string]interface{})
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		filter, name, dotted := strings.Cut(key, ".")
		if !ok || !dotted || filter == "" || name == "" {
			return nil, fmt.Errorf("parameter %q must look like filter.key=value", kv)
		}

		var decoded interface{}
		if err := yaml.Unmarshal([]byte(value), &decoded); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", kv, err)
		}

		if out[filter] == nil {
			out[filter] = make(map[string]interface{})
		}
		out[filter][name] = decoded
	}
	return out, nil
}

func formatDefaults(defaults map[string]interface{}) string {
	if len(defaults) == 0 {
		return ""
	}

	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, defaults[k])
	}
	return " [" + strings.Join(parts, " ") + "]"
}
