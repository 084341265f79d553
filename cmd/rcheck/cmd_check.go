// Package main provides the rcheck CLI for building and checking R packages.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"rcheck/internal/domain-adapters/gateways"
	orchestrators "rcheck/internal/domain-orchestrators"
	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces"
	"rcheck/internal/domain/services"
	"rcheck/internal/external-adapters/yaml"
)

// runCheck returns the process exit code rather than exiting, so the scoped
// temp directories are released on every path, including errors-found runs.
func runCheck(ctx context.Context, args []string) int {
	cfg, err := yaml.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var (
		asCran        = fs.Bool("as-cran", cfg.Check.AsCran, "Check with CRAN compatibility flags")
		checkVersion  = fs.Bool("check-version", cfg.Check.CheckVersion, "Run the incoming-CRAN version checks")
		forceSuggests = fs.Bool("force-suggests", cfg.Check.ForceSuggests, "Require all suggested dependencies")
		runDontTest   = fs.Bool("run-donttest", cfg.Check.RunDontTest, "Run tests that are normally skipped")
		document      = fs.Bool("document", cfg.Check.Document, "Regenerate documentation before checking")
		checkDir      = fs.String("check-dir", cfg.Check.Dir, "Directory for the check output (default: scoped temp dir)")
		envFile       = fs.String("env-file", cfg.EnvFile, "Optional .Renviron-style file merged into the check environment")
		keep          = fs.Bool("keep", false, "Keep the built artifact and check directory")
		quiet         = fs.Bool("quiet", false, "Quiet mode - no tool output streaming")
		verbose       = fs.Bool("verbose", false, "Verbose logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rcheck check [options] [package-path] [-- extra check args]

Build the package at package-path (default: current directory) into a source
tarball, run R CMD check against it, and print the classified results.
Exits 1 when the check reports errors.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	pkgPath, extra := splitArgs(args, fs.Args())
	extraArgs := append([]string{}, cfg.Check.Args...)
	extraArgs = append(extraArgs, extra...)

	pkg := resolvePackage(ctx, pkgPath)

	log := &interfaces.StderrLogger{Verbose: *verbose}
	runner := gateways.NewCommandRunner(log)

	var baseEnv entities.EnvOverlay
	if *envFile != "" {
		baseEnv, err = gateways.LoadEnvFile(*envFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if *document {
		fmt.Fprintf(os.Stderr, "Documenting %s...\n", pkg.Name)
		documenter := gateways.NewDocumenter(runner)
		if err := documenter.Document(ctx, pkg, !*quiet); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	// The built tarball is scoped to this run unless --keep is given.
	destDir, err := os.MkdirTemp("", "rcheck-build-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !*keep {
		defer os.RemoveAll(destDir)
	}

	workDir := *checkDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "rcheck-check-")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if !*keep {
			defer os.RemoveAll(workDir)
		}
	}

	buildOrch := orchestrators.NewBuildOrchestrator(runner, log, orchestrators.BuildOrchestratorConfig{
		Tool:     gateways.RBinary(),
		PDFProbe: gateways.HasPDFTypesetter,
		Stream:   !*quiet,
	})

	fmt.Fprintf(os.Stderr, "Building %s %s...\n", pkg.Name, pkg.Version)
	artifact, err := buildOrch.Build(ctx, pkg, destDir, entities.BuildOptions{
		IncludeVignettes: cfg.Build.Vignettes,
		IncludeManual:    cfg.Build.Manual,
		ExtraArgs:        cfg.Build.Args,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	checkOrch := orchestrators.NewCheckOrchestrator(runner, gateways.NewEnvComposer(log), services.NewClassifier(), log, orchestrators.CheckOrchestratorConfig{
		Tool:    gateways.RBinary(),
		BaseEnv: baseEnv,
		Stream:  !*quiet,
	})

	fmt.Fprintf(os.Stderr, "Checking %s %s...\n", pkg.Name, pkg.Version)
	report, err := checkOrch.CheckBuilt(ctx, artifact, entities.CheckOptions{
		CranMode:      *asCran,
		CheckVersion:  *checkVersion,
		ForceSuggests: *forceSuggests,
		RunDontTest:   *runDontTest,
		ExtraArgs:     extraArgs,
		WorkDir:       workDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	printCheckReport(pkg, report)
	if *keep {
		fmt.Fprintf(os.Stderr, "\nArtifact kept at %s\nCheck output kept at %s\n", artifact, workDir)
	}

	if len(report.Errors) > 0 {
		return 1
	}
	return 0
}

func printCheckReport(pkg *entities.PackageRef, report *entities.CheckReport) {
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	noteColor := color.New(color.FgCyan, color.Bold)
	okColor := color.New(color.FgGreen, color.Bold)

	fmt.Printf("\nR CMD check results for %s %s\n\n", pkg.Name, pkg.Version)

	printBucket := func(c *color.Color, label string, messages []string) {
		for _, msg := range messages {
			c.Printf("%s\n", label)
			if msg != "" {
				fmt.Printf("%s\n", msg)
			}
			fmt.Println()
		}
	}
	printBucket(errColor, "ERROR", report.Errors)
	printBucket(warnColor, "WARNING", report.Warnings)
	printBucket(noteColor, "NOTE", report.Notes)

	summary := fmt.Sprintf("%s | %s | %s",
		pluralize(len(report.Errors), "error"),
		pluralize(len(report.Warnings), "warning"),
		pluralize(len(report.Notes), "note"))
	if report.Clean() {
		okColor.Printf("%s ✔\n", summary)
	} else {
		fmt.Println(summary)
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
