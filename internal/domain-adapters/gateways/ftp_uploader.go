package gateways

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/jlaffaye/ftp"
)

// winBuilderAddr is the public upload endpoint of the win-builder service.
const winBuilderAddr = "win-builder.r-project.org:21"

// FTPUploader transmits source artifacts to a remote build service over
// anonymous FTP.
type FTPUploader struct {
	addr    string
	timeout time.Duration
}

// NewFTPUploader creates an uploader pointed at the win-builder service
func NewFTPUploader() *FTPUploader {
	return &FTPUploader{
		addr:    winBuilderAddr,
		timeout: 5 * time.Minute,
	}
}

// Upload stores the local file under the given remote directory. Each call
// opens and closes its own connection; the service processes uploads
// asynchronously, so there is nothing to read back.
func (u *FTPUploader) Upload(ctx context.Context, remoteDir, localPath string) error {
	conn, err := ftp.Dial(u.addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(u.timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", u.addr, err)
	}
	//nolint:errcheck // Defer close
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return fmt.Errorf("failed to log in to %s: %w", u.addr, err)
	}

	//nolint:gosec // G304: the caller chose the artifact to upload
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open artifact %s: %w", localPath, err)
	}
	//nolint:errcheck // Defer close
	defer file.Close()

	remotePath := path.Join(remoteDir, filepath.Base(localPath))
	if err := conn.Stor(remotePath, file); err != nil {
		return fmt.Errorf("failed to upload %s to %s: %w", localPath, remotePath, err)
	}
	return nil
}
