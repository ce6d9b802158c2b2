// Package ssh implements the remote session and file-copy channel over
// the SSH transport. It adapts golang.org/x/crypto/ssh and
// github.com/pkg/sftp to the interfaces the deploy engine consumes and
// keeps all transport detail out of the core packages.
package ssh

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/shipit-dev/shipit/internal/core/deploy"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// Factory implements deploy.SessionFactory by dialing the host described
// by the context.
type Factory struct{}

// NewFactory creates a new SSH session factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewSession dials the host and returns a live session. The local SSH
// agent, when available, is used for authentication and forwarded into
// the session.
func (f *Factory) NewSession(ctx *deploy.Context) (deploy.Session, error) {
	localAgent := dialAgent(ctx)

	sshConfig := &ssh.ClientConfig{
		User:            resolveUser(ctx),
		Auth:            authMethods(ctx, localAgent),
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	debugf(ctx, "dialing %s as %s", ctx.Addr(), sshConfig.User)
	client, err := ssh.Dial("tcp", ctx.Addr(), sshConfig)
	if err != nil {
		return nil, &deploy.ConnectionError{Host: ctx.Host, Cause: err}
	}
	debugf(ctx, "connected to %s", ctx.Addr())

	return &RemoteSession{
		ctx:       ctx,
		transport: NewTransportAdapter(client, localAgent),
		newSFTP: func() (SFTPClientInterface, error) {
			sftpClient, err := newSFTPClient(client)
			if err != nil {
				return nil, fmt.Errorf("SFTP connection failed: %w", err)
			}
			return sftpClient, nil
		},
	}, nil
}

func resolveUser(ctx *deploy.Context) string {
	if ctx.User != "" {
		return ctx.User
	}
	if current, err := user.Current(); err == nil {
		return current.Username
	}
	return "root"
}

func authMethods(ctx *deploy.Context, localAgent agent.ExtendedAgent) []ssh.AuthMethod {
	methods := []ssh.AuthMethod{}

	if localAgent != nil {
		debugf(ctx, "using SSH agent for authentication")
		methods = append(methods, ssh.PublicKeysCallback(localAgent.Signers))
	}

	if ctx.Identity != "" {
		if key, err := loadPrivateKey(ctx.Identity); err == nil {
			debugf(ctx, "using identity file %s", ctx.Identity)
			methods = append(methods, key)
		} else {
			debugf(ctx, "identity file %s unusable: %v", ctx.Identity, err)
		}
	}

	return methods
}

func dialAgent(ctx *deploy.Context) agent.ExtendedAgent {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		debugf(ctx, "SSH agent unreachable: %v", err)
		return nil
	}

	return agent.NewClient(conn)
}

func loadPrivateKey(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return ssh.PublicKeys(signer), nil
}

func debugf(ctx *deploy.Context, format string, args ...interface{}) {
	if ctx.Verbose {
		log.Printf("ssh: "+format, args...)
	}
}
