package ssh

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/sftp"
)

// SFTPClientInterface abstracts the SFTP operations the copier needs.
type SFTPClientInterface interface {
	Create(path string) (io.WriteCloser, error)
	MkdirAll(path string) error
	Chmod(path string, mode os.FileMode) error
	Close() error
}

// SFTPAdapter adapts sftp.Client to SFTPClientInterface.
type SFTPAdapter struct {
	*sftp.Client
}

// Create implements SFTPClientInterface.
func (a *SFTPAdapter) Create(path string) (io.WriteCloser, error) {
	return a.Client.Create(path)
}

// MkdirAll implements SFTPClientInterface.
func (a *SFTPAdapter) MkdirAll(path string) error {
	return a.Client.MkdirAll(path)
}

// Copier transfers files to the remote host over SFTP.
type Copier struct {
	client SFTPClientInterface
}

// NewCopier creates a new Copier instance.
func NewCopier(client SFTPClientInterface) *Copier {
	return &Copier{client: client}
}

// CopyFile copies a single local file to remotePath, creating parent
// directories and carrying the local file mode over.
func (c *Copier) CopyFile(localPath, remotePath string) error {
	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer localFile.Close()

	localInfo, err := localFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source file: %w", err)
	}
	if localInfo.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", localPath)
	}

	if err := c.client.MkdirAll(path.Dir(remotePath)); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	remoteFile, err := c.client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create destination file %s: %w", remotePath, err)
	}
	defer remoteFile.Close()

	if _, err := io.Copy(remoteFile, localFile); err != nil {
		return fmt.Errorf("copy file content: %w", err)
	}

	if err := c.client.Chmod(remotePath, localInfo.Mode()); err != nil {
		return fmt.Errorf("set file permissions: %w", err)
	}

	return nil
}
