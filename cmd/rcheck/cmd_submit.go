package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"rcheck/internal/domain-adapters/gateways"
	orchestrators "rcheck/internal/domain-orchestrators"
	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces"
	"rcheck/internal/external-adapters/gpg"
	"rcheck/internal/external-adapters/yaml"
)

func runSubmit(ctx context.Context, args []string) int {
	cfg, err := yaml.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	var (
		versions = fs.String("versions", strings.Join(cfg.Submit.Versions, ","), "Comma-separated win-builder targets (R-devel, R-release, R-oldrelease)")
		signKey  = fs.String("sign-key", "", "Armored private key to sign the artifact with")
		yes      = fs.Bool("yes", false, "Skip the confirmation prompt")
		quiet    = fs.Bool("quiet", false, "Quiet mode - no tool output streaming")
		verbose  = fs.Bool("verbose", false, "Verbose logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rcheck submit [options] [package-path]

Build the package at package-path (default: current directory) into a source
tarball and upload it to the win-builder service, once per target version.
Results arrive by email to the package maintainer; nothing is reported here.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	pkgPath := "."
	if fs.NArg() >= 1 {
		pkgPath = fs.Arg(0)
	}

	pkg := resolvePackage(ctx, pkgPath)

	targets := splitVersions(*versions)
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no target versions given")
		return 1
	}

	if !*yes && !confirmSubmission(pkg, targets) {
		fmt.Fprintln(os.Stderr, "Submission aborted.")
		return 1
	}

	log := &interfaces.StderrLogger{Verbose: *verbose}
	runner := gateways.NewCommandRunner(log)
	buildOrch := orchestrators.NewBuildOrchestrator(runner, log, orchestrators.BuildOrchestratorConfig{
		Tool:     gateways.RBinary(),
		PDFProbe: gateways.HasPDFTypesetter,
		Stream:   !*quiet,
	})

	var signer orchestrators.Signer
	if *signKey != "" {
		s, err := gpg.NewSigner(*signKey, os.Getenv("RCHECK_KEY_PASSPHRASE"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		signer = s
	}

	submitOrch := orchestrators.NewSubmitOrchestrator(buildOrch, gateways.NewFTPUploader(), signer, log)

	if err := submitOrch.Submit(ctx, pkg, targets, entities.BuildOptions{
		IncludeVignettes: cfg.Build.Vignettes,
		IncludeManual:    cfg.Build.Manual,
		ExtraArgs:        cfg.Build.Args,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ok := color.New(color.FgGreen, color.Bold)
	ok.Printf("✔ %s %s submitted to %s\n", pkg.Name, pkg.Version, strings.Join(targets, ", "))
	contact := pkg.Maintainer
	if contact == "" {
		contact = "the maintainer listed in DESCRIPTION"
	}
	fmt.Printf("The win-builder service emails its results to %s,\nusually within 15-30 minutes. No results are reported here.\n", contact)
	return 0
}

func confirmSubmission(pkg *entities.PackageRef, targets []string) bool {
	fmt.Fprintf(os.Stderr, "About to submit %s %s to %s.\n", pkg.Name, pkg.Version, strings.Join(targets, ", "))
	if pkg.Maintainer != "" {
		fmt.Fprintf(os.Stderr, "Results will be emailed to %s.\n", pkg.Maintainer)
	}
	fmt.Fprint(os.Stderr, "Continue? [y/N] ")

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func splitVersions(csv string) []string {
	var targets []string
	for _, v := range strings.Split(csv, ",") {
		if v = strings.TrimSpace(v); v != "" {
			targets = append(targets, v)
		}
	}
	return targets
}
