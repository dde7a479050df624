package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/SuyashParmar/network-auditor/internal/config"
	"github.com/SuyashParmar/network-auditor/internal/output"
)

// CommandRunner runs command on the device at addr and returns its stdout.
// It is swapped out in tests.
type CommandRunner func(ctx context.Context, addr string, clientCfg *ssh.ClientConfig, command string) (string, error)

// SSHFetcher retrieves the configuration by running a show command over SSH.
type SSHFetcher struct {
	device config.Device
	runner CommandRunner
	retry  RetryConfig
}

// NewSSHFetcher returns a fetcher for device using a real SSH connection.
func NewSSHFetcher(device config.Device) *SSHFetcher {
	return NewSSHFetcherWithRunner(device, nil)
}

// NewSSHFetcherWithRunner returns a fetcher with an injected runner.
func NewSSHFetcherWithRunner(device config.Device, runner CommandRunner) *SSHFetcher {
	if runner == nil {
		runner = runSSHCommand
	}
	retry := DefaultRetryConfig()
	retry.MaxAttempts = device.Retries
	return &SSHFetcher{device: device, runner: runner, retry: retry}
}

// Addr returns host:port of the device.
func (f *SSHFetcher) Addr() string {
	return net.JoinHostPort(f.device.Host, strconv.Itoa(f.device.Port))
}

// Fetch connects to the device and returns the output of the configured
// command, retrying up to device.Retries attempts. Each attempt is bounded
// by device.timeoutSeconds.
func (f *SSHFetcher) Fetch(ctx context.Context) (string, error) {
	addr := f.Addr()
	clientCfg, err := f.clientConfig()
	if err != nil {
		return "", &RetrievalError{Source: addr, Err: err}
	}

	attempt := 0
	out, err := Retry(ctx, f.retry, func(ctx context.Context) (string, error) {
		attempt++
		output.Debug("connecting to device", "addr", addr, "attempt", attempt)
		if timeout := f.device.Timeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return f.runner(ctx, addr, clientCfg, f.device.Command)
	})
	if err != nil {
		return "", &RetrievalError{Source: addr, Err: err}
	}
	if strings.TrimSpace(out) == "" {
		output.Warn("device returned an empty configuration", "addr", addr, "command", f.device.Command)
	}
	return out, nil
}

func (f *SSHFetcher) clientConfig() (*ssh.ClientConfig, error) {
	hostKey, err := f.hostKeyCallback()
	if err != nil {
		return nil, err
	}
	password := f.device.Password
	return &ssh.ClientConfig{
		User: f.device.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: hostKey,
		Timeout:         f.device.Timeout(),
	}, nil
}

func (f *SSHFetcher) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if f.device.KnownHostsFile == "" {
		output.Warn("host key verification disabled; set device.knownHostsFile to enable it", "host", f.device.Host)
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // opt-in via knownHostsFile
	}
	cb, err := knownhosts.New(f.device.KnownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("loading known hosts %s: %w", f.device.KnownHostsFile, err)
	}
	return cb, nil
}

// runSSHCommand dials addr, runs command in a single session and returns
// stdout. The handshake and the command share one deadline, the earlier of
// ctx's deadline and clientCfg.Timeout from now. The connection is closed
// when ctx is done.
func runSSHCommand(ctx context.Context, addr string, clientCfg *ssh.ClientConfig, command string) (string, error) {
	dialer := net.Dialer{Timeout: clientCfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("dialing %s: %w", addr, err)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	if deadline, ok := attemptDeadline(ctx, clientCfg.Timeout); ok {
		_ = conn.SetDeadline(deadline)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		_ = conn.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("opening ssh session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr
	if err := session.Run(command); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return "", fmt.Errorf("running %q: %w: %s", command, err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("running %q: %w", command, err)
	}
	return stdout.String(), nil
}

func attemptDeadline(ctx context.Context, timeout time.Duration) (time.Time, bool) {
	deadline, ok := ctx.Deadline()
	if timeout > 0 {
		if own := time.Now().Add(timeout); !ok || own.Before(deadline) {
			return own, true
		}
	}
	return deadline, ok
}
