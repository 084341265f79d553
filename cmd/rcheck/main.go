package main

import (
	"context"
	"fmt"
	"os"

	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces/repositories"
	"rcheck/internal/external-adapters/dcf"
)

var packageRepo repositories.PackageRepository = dcf.NewRepository()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand. Subcommands return an exit code instead of
	// calling os.Exit so that their deferred cleanup runs first.
	switch command {
	case "check":
		os.Exit(runCheck(ctx, os.Args[2:]))
	case "build":
		os.Exit(runBuildCmd(ctx, os.Args[2:]))
	case "submit":
		os.Exit(runSubmit(ctx, os.Args[2:]))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rcheck - Build and check R packages with the R toolchain

Usage:
  rcheck <command> [options] [package-path]

Commands:
  check    Build a package and run R CMD check against it
  build    Build a source or binary package artifact
  submit   Build a source package and submit it to win-builder

Use "rcheck <command> --help" for more information about a command.`)
}

// splitArgs separates the package path from extra tool arguments after flag
// parsing. A leading "--" terminator means the path was omitted and every
// positional is an extra argument; otherwise the first positional is the
// path, and a "--" separating it from the extras is dropped.
func splitArgs(raw, positionals []string) (string, []string) {
	if len(positionals) == 0 {
		return ".", nil
	}
	for i, a := range raw {
		if a == "--" {
			if len(raw)-i-1 == len(positionals) {
				return ".", positionals
			}
			break
		}
	}
	extra := positionals[1:]
	if len(extra) > 0 && extra[0] == "--" {
		extra = extra[1:]
	}
	return positionals[0], extra
}

// resolvePackage loads package metadata from a source tree, exiting on
// failure the way every subcommand wants.
func resolvePackage(ctx context.Context, path string) *entities.PackageRef {
	pkg, err := packageRepo.Resolve(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return pkg
}
