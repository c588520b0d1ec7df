// cmd/realtyscrapexter/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/valpere/RealtyScrapexter/internal/batch"
	"github.com/valpere/RealtyScrapexter/internal/config"
	"github.com/valpere/RealtyScrapexter/internal/monitoring"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// runExtraction loads the configuration and processes the configured
// snapshots as one batch
func runExtraction(configFile string) {
	verbose := hasFlag("-v") || hasFlag("--verbose")

	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("Configuration loaded: %s\n", cfg.Name)
		fmt.Printf("Output format: %s\n", cfg.Output.Format)
	}

	var opts []batch.Option
	if cfg.Metrics.Enabled {
		metrics := monitoring.NewMetricsManager(monitoring.MetricsConfig{
			ListenAddress: cfg.Metrics.ListenAddress,
		})
		go metrics.StartMetricsServer(context.Background(), cfg.Metrics.ListenAddress, "/metrics")
		opts = append(opts, batch.WithMetrics(metrics))
	}

	processor, err := batch.New(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	summary, err := processor.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: extraction failed: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("Snapshots processed: %d\n", summary.FilesProcessed)
		fmt.Printf("Snapshots skipped:   %d\n", summary.FilesSkipped)
		fmt.Printf("Snapshots failed:    %d\n", summary.FilesFailed)
		fmt.Printf("Records written:     %d\n", summary.RecordsWritten)
	} else {
		fmt.Printf("Extraction completed: %d record(s) written\n", summary.RecordsWritten)
	}

	if summary.FilesFailed > 0 {
		os.Exit(1)
	}
}

// validateConfig checks a configuration file without running it
func validateConfig(configFile string) {
	verbose := hasFlag("-v") || hasFlag("--verbose")

	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("Configuration details:\n")
		fmt.Printf("  Name: %s\n", cfg.Name)
		fmt.Printf("  Input files: %d\n", len(cfg.Input.Files))
		fmt.Printf("  Input directory: %s\n", cfg.Input.Directory)
		fmt.Printf("  Output format: %s\n", cfg.Output.Format)
	}

	fmt.Printf("✓ Configuration file '%s' is valid\n", configFile)
}

// generateTemplate renders a starter configuration as YAML
func generateTemplate(args []string) (string, error) {
	templateType := "basic"
	if len(args) > 0 && args[0] == "--type" && len(args) > 1 {
		templateType = args[1]
	}

	template := config.GenerateTemplate(templateType)

	yamlData, err := yaml.Marshal(template)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template to YAML: %w", err)
	}

	return string(yamlData), nil
}

// hasFlag checks if a flag is present in command line arguments
func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

// main function handles CLI arguments and routes to appropriate functions
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Error: config file required\n")
			fmt.Fprintf(os.Stderr, "Usage: realtyscrapexter run <config.yaml>\n")
			os.Exit(1)
		}
		runExtraction(os.Args[2])

	case "validate":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Error: config file required\n")
			fmt.Fprintf(os.Stderr, "Usage: realtyscrapexter validate <config.yaml>\n")
			os.Exit(1)
		}
		validateConfig(os.Args[2])

	case "template":
		template, err := generateTemplate(os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(template)

	case "version", "--version":
		printVersion()

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", command)
		printUsage()
		os.Exit(1)
	}
}

// printUsage displays help information
func printUsage() {
	fmt.Println("RealtyScrapexter - Real Estate Snapshot Extraction Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  realtyscrapexter run <config.yaml>        Run extraction with configuration file")
	fmt.Println("  realtyscrapexter validate <config.yaml>   Validate configuration file")
	fmt.Println("  realtyscrapexter template [--type <type>] Generate configuration template")
	fmt.Println("  realtyscrapexter version                  Show version information")
	fmt.Println("  realtyscrapexter help                     Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose                             Enable verbose output")
	fmt.Println()
	fmt.Println("Template types:")
	fmt.Println("  basic       Local snapshot extraction (default)")
	fmt.Println("  database    Database-backed output")
	fmt.Println("  tuned       Explicit engine tunables")
	fmt.Println()
	fmt.Println("Environment variables referenced as ${VAR} in the configuration")
	fmt.Println("file are expanded at load time.")
}

// printVersion displays version information
func printVersion() {
	fmt.Printf("RealtyScrapexter %s\n", version)
	fmt.Printf("Build time: %s\n", buildTime)
	fmt.Printf("Git commit: %s\n", gitCommit)
}
