package orchestrators

import (
	"context"
	"fmt"
	"os"

	"rcheck/internal/domain/entities"
	"rcheck/internal/domain/interfaces"
)

// Builder interface for producing a source artifact to submit
type Builder interface {
	Build(ctx context.Context, pkg *entities.PackageRef, destDir string, opts entities.BuildOptions) (string, error)
}

// Uploader interface for transmitting a local file to the remote service
type Uploader interface {
	Upload(ctx context.Context, remoteDir, localPath string) error
}

// Signer interface for producing a detached artifact signature
type Signer interface {
	SignArtifact(artifactPath string) (string, error)
}

// SubmitOrchestrator builds a source artifact and transmits it to the remote
// build service, once per requested target version. The service reports
// results by email to the package maintainer; nothing is parsed here.
type SubmitOrchestrator struct {
	builder  Builder
	uploader Uploader
	signer   Signer
	log      interfaces.Logger
}

// NewSubmitOrchestrator creates a new submission orchestrator. signer may be
// nil when the artifact should not be signed.
func NewSubmitOrchestrator(builder Builder, uploader Uploader, signer Signer, log interfaces.Logger) *SubmitOrchestrator {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &SubmitOrchestrator{
		builder:  builder,
		uploader: uploader,
		signer:   signer,
		log:      log,
	}
}

// Submit builds a source tarball in a scoped temporary directory and uploads
// it once per target version. Fire-and-forget: an upload failure aborts, a
// successful upload produces no further result.
func (o *SubmitOrchestrator) Submit(ctx context.Context, pkg *entities.PackageRef, versions []string, opts entities.BuildOptions) error {
	if len(versions) == 0 {
		return fmt.Errorf("no target versions to submit %s to", pkg.Name)
	}

	destDir, err := os.MkdirTemp("", "rcheck-submit-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(destDir)

	// Remote services only take source tarballs.
	opts.Binary = false
	artifact, err := o.builder.Build(ctx, pkg, destDir, opts)
	if err != nil {
		return err
	}

	if o.signer != nil {
		sigPath, err := o.signer.SignArtifact(artifact)
		if err != nil {
			return fmt.Errorf("failed to sign %s: %w", artifact, err)
		}
		o.log.Info("artifact signed", interfaces.F("signature", sigPath))
	}

	for _, version := range versions {
		o.log.Info("uploading artifact",
			interfaces.F("package", pkg.Name),
			interfaces.F("target", version))
		if err := o.uploader.Upload(ctx, "/"+version, artifact); err != nil {
			return fmt.Errorf("submission of %s to %s failed: %w", pkg.Name, version, err)
		}
	}

	return nil
}
