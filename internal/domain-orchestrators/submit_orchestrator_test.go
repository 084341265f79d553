package orchestrators

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rcheck/internal/domain/entities"
)

type mockBuilder struct {
	destDirs []string
	opts     []entities.BuildOptions
	err      error
}

func (m *mockBuilder) Build(_ context.Context, pkg *entities.PackageRef, destDir string, opts entities.BuildOptions) (string, error) {
	m.destDirs = append(m.destDirs, destDir)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	artifact := filepath.Join(destDir, pkg.Name+"_"+pkg.Version+".tar.gz")
	if err := os.WriteFile(artifact, []byte("tarball"), 0600); err != nil {
		return "", err
	}
	return artifact, nil
}

type mockUploader struct {
	remoteDirs []string
	localPaths []string
	err        error
}

func (m *mockUploader) Upload(_ context.Context, remoteDir, localPath string) error {
	if m.err != nil {
		return m.err
	}
	m.remoteDirs = append(m.remoteDirs, remoteDir)
	m.localPaths = append(m.localPaths, localPath)
	return nil
}

type mockSigner struct {
	signed []string
	err    error
}

func (m *mockSigner) SignArtifact(artifactPath string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.signed = append(m.signed, artifactPath)
	return artifactPath + ".asc", nil
}

func TestSubmitOrchestrator_Submit(t *testing.T) {
	builder := &mockBuilder{}
	uploader := &mockUploader{}
	orch := NewSubmitOrchestrator(builder, uploader, nil, nil)

	err := orch.Submit(context.Background(), testPackage(), []string{"R-devel", "R-release"}, entities.BuildOptions{})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if want := []string{"/R-devel", "/R-release"}; !reflect.DeepEqual(uploader.remoteDirs, want) {
		t.Errorf("remote dirs = %v, want %v", uploader.remoteDirs, want)
	}
	if len(uploader.localPaths) != 2 || uploader.localPaths[0] != uploader.localPaths[1] {
		t.Errorf("the same artifact should be uploaded to every target, got %v", uploader.localPaths)
	}
}

func TestSubmitOrchestrator_Submit_ForcesSourceMode(t *testing.T) {
	builder := &mockBuilder{}
	orch := NewSubmitOrchestrator(builder, &mockUploader{}, nil, nil)

	err := orch.Submit(context.Background(), testPackage(), []string{"R-devel"}, entities.BuildOptions{Binary: true})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if builder.opts[0].Binary {
		t.Error("submission must build a source artifact even when binary mode was passed")
	}
}

func TestSubmitOrchestrator_Submit_StagingDirCleaned(t *testing.T) {
	builder := &mockBuilder{}
	orch := NewSubmitOrchestrator(builder, &mockUploader{}, nil, nil)

	if err := orch.Submit(context.Background(), testPackage(), []string{"R-devel"}, entities.BuildOptions{}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := os.Stat(builder.destDirs[0]); !os.IsNotExist(err) {
		t.Errorf("staging dir %s still exists after submission", builder.destDirs[0])
	}
}

func TestSubmitOrchestrator_Submit_BuildFailureAborts(t *testing.T) {
	builder := &mockBuilder{err: &entities.ExternalToolError{Command: []string{"R"}, ExitCode: 1}}
	uploader := &mockUploader{}
	orch := NewSubmitOrchestrator(builder, uploader, nil, nil)

	err := orch.Submit(context.Background(), testPackage(), []string{"R-devel"}, entities.BuildOptions{})

	var toolErr *entities.ExternalToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("Submit() error = %v, want the build failure", err)
	}
	if len(uploader.remoteDirs) != 0 {
		t.Error("nothing should be uploaded when the build fails")
	}
}

func TestSubmitOrchestrator_Submit_UploadFailure(t *testing.T) {
	builder := &mockBuilder{}
	uploader := &mockUploader{err: errors.New("530 login incorrect")}
	orch := NewSubmitOrchestrator(builder, uploader, nil, nil)

	if err := orch.Submit(context.Background(), testPackage(), []string{"R-devel"}, entities.BuildOptions{}); err == nil {
		t.Fatal("Submit() error = nil, want upload failure")
	}
	if _, statErr := os.Stat(builder.destDirs[0]); !os.IsNotExist(statErr) {
		t.Error("staging dir must be cleaned even on upload failure")
	}
}

func TestSubmitOrchestrator_Submit_SignsWhenConfigured(t *testing.T) {
	builder := &mockBuilder{}
	signer := &mockSigner{}
	orch := NewSubmitOrchestrator(builder, &mockUploader{}, signer, nil)

	if err := orch.Submit(context.Background(), testPackage(), []string{"R-devel"}, entities.BuildOptions{}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(signer.signed) != 1 {
		t.Errorf("signer called %d times, want 1", len(signer.signed))
	}
}

func TestSubmitOrchestrator_Submit_NoTargets(t *testing.T) {
	orch := NewSubmitOrchestrator(&mockBuilder{}, &mockUploader{}, nil, nil)

	if err := orch.Submit(context.Background(), testPackage(), nil, entities.BuildOptions{}); err == nil {
		t.Error("Submit() error = nil, want failure for empty target list")
	}
}
