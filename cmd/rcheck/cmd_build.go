package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"rcheck/internal/domain-adapters/gateways"
	orchestrators "rcheck/internal/domain-orchestrators"
	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces"
	"rcheck/internal/external-adapters/gpg"
	"rcheck/internal/external-adapters/yaml"
)

func runBuildCmd(ctx context.Context, args []string) int {
	cfg, err := yaml.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("build", flag.ExitOnError)
	var (
		binary    = fs.Bool("binary", false, "Build a platform binary instead of a source tarball")
		vignettes = fs.Bool("vignettes", cfg.Build.Vignettes, "Build vignettes (source mode)")
		manual    = fs.Bool("manual", cfg.Build.Manual, "Build the PDF manual when a typesetter is present (source mode)")
		dest      = fs.String("dest", cfg.Build.Dest, "Destination directory for the artifact")
		signKey   = fs.String("sign-key", "", "Armored private key to sign the artifact with")
		quiet     = fs.Bool("quiet", false, "Quiet mode - no tool output streaming")
		verbose   = fs.Bool("verbose", false, "Verbose logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rcheck build [options] [package-path] [-- extra build args]

Build the package at package-path (default: current directory) into a
distributable artifact and print the artifact path.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	pkgPath, extra := splitArgs(args, fs.Args())
	extraArgs := append([]string{}, cfg.Build.Args...)
	extraArgs = append(extraArgs, extra...)

	pkg := resolvePackage(ctx, pkgPath)

	log := &interfaces.StderrLogger{Verbose: *verbose}
	runner := gateways.NewCommandRunner(log)
	buildOrch := orchestrators.NewBuildOrchestrator(runner, log, orchestrators.BuildOrchestratorConfig{
		Tool:     gateways.RBinary(),
		PDFProbe: gateways.HasPDFTypesetter,
		Stream:   !*quiet,
	})

	fmt.Fprintf(os.Stderr, "Building %s %s...\n", pkg.Name, pkg.Version)
	artifact, err := buildOrch.Build(ctx, pkg, *dest, entities.BuildOptions{
		Binary:           *binary,
		IncludeVignettes: *vignettes,
		IncludeManual:    *manual,
		ExtraArgs:        extraArgs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *signKey != "" {
		signer, err := gpg.NewSigner(*signKey, os.Getenv("RCHECK_KEY_PASSPHRASE"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		sigPath, err := signer.SignArtifact(artifact)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Signature written to %s\n", sigPath)
	}

	// The artifact path goes to stdout so scripts can capture it.
	fmt.Println(artifact)
	return 0
}
