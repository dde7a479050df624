package device

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/SuyashParmar/network-auditor/internal/config"
)

// execHandler serves one "exec" request and returns the exit status.
type execHandler func(command string, ch ssh.Channel) uint32

type testSSHServer struct {
	host    string
	port    int
	hostKey ssh.PublicKey
}

func (s *testSSHServer) device() config.Device {
	return config.Device{
		Host:           s.host,
		Port:           s.port,
		Username:       "vyos",
		Password:       "vyos-pw",
		Command:        config.DefaultCommand,
		TimeoutSeconds: 2,
		Retries:        1,
	}
}

func listenLocal(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln
}

func hostPort(t *testing.T, ln net.Listener) (string, int) {
	t.Helper()
	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}

// startSSHServer runs an SSH server on loopback that accepts user "vyos"
// with password "vyos-pw" and hands exec requests to handler.
func startSSHServer(t *testing.T, handler execHandler) *testSSHServer {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := ssh.NewSignerFromKey(priv)
	require.NoError(t, err)

	cfg := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == "vyos" && string(pass) == "vyos-pw" {
				return nil, nil
			}
			return nil, errors.New("access denied")
		},
	}
	cfg.AddHostKey(signer)

	ln := listenLocal(t)
	srv := &testSSHServer{hostKey: signer.PublicKey()}
	srv.host, srv.port = hostPort(t, ln)

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveSSHConn(conn, cfg, handler)
		}
	}()
	return srv
}

func serveSSHConn(conn net.Conn, cfg *ssh.ServerConfig, handler execHandler) {
	defer conn.Close()
	sconn, chans, reqs, err := ssh.NewServerConn(conn, cfg)
	if err != nil {
		return
	}
	defer sconn.Close()
	go ssh.DiscardRequests(reqs)

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			_ = newCh.Reject(ssh.UnknownChannelType, "session only")
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			return
		}
		go func() {
			defer ch.Close()
			for req := range requests {
				if req.Type != "exec" {
					_ = req.Reply(false, nil)
					continue
				}
				var payload struct{ Command string }
				if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
					_ = req.Reply(false, nil)
					return
				}
				_ = req.Reply(true, nil)
				status := handler(payload.Command, ch)
				_, _ = ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
				return
			}
		}()
	}
}

func TestRunSSHCommand_ReturnsStdout(t *testing.T) {
	commands := make(chan string, 1)
	srv := startSSHServer(t, func(command string, ch ssh.Channel) uint32 {
		commands <- command
		_, _ = ch.Write([]byte("set service ssh\nset service telnet\n"))
		return 0
	})

	text, err := NewSSHFetcher(srv.device()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "set service ssh\nset service telnet\n", text)
	assert.Equal(t, config.DefaultCommand, <-commands)
}

func TestRunSSHCommand_VerifiesKnownHost(t *testing.T) {
	srv := startSSHServer(t, func(_ string, ch ssh.Channel) uint32 {
		_, _ = ch.Write([]byte("ok"))
		return 0
	})
	addr := net.JoinHostPort(srv.host, strconv.Itoa(srv.port))

	path := filepath.Join(t.TempDir(), "known_hosts")
	line := knownhosts.Line([]string{knownhosts.Normalize(addr)}, srv.hostKey)
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o600))

	dev := srv.device()
	dev.KnownHostsFile = path
	text, err := NewSSHFetcher(dev).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", text)

	_, otherKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherSigner, err := ssh.NewSignerFromKey(otherKey)
	require.NoError(t, err)
	line = knownhosts.Line([]string{knownhosts.Normalize(addr)}, otherSigner.PublicKey())
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o600))

	_, err = NewSSHFetcher(dev).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ssh handshake")
}

func TestRunSSHCommand_WrongPassword(t *testing.T) {
	srv := startSSHServer(t, func(string, ssh.Channel) uint32 { return 0 })
	dev := srv.device()
	dev.Password = "wrong"

	_, err := NewSSHFetcher(dev).Fetch(context.Background())
	require.Error(t, err)
	var re *RetrievalError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, err.Error(), "unable to authenticate")
}

func TestRunSSHCommand_NonZeroExitIncludesStderr(t *testing.T) {
	srv := startSSHServer(t, func(_ string, ch ssh.Channel) uint32 {
		_, _ = ch.Stderr().Write([]byte("Invalid command: [show]\n"))
		return 1
	})

	_, err := NewSSHFetcher(srv.device()).Fetch(context.Background())
	require.Error(t, err)
	var exitErr *ssh.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.ExitStatus())
	assert.Contains(t, err.Error(), "Invalid command: [show]")
}

func TestRunSSHCommand_StalledCommandHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := startSSHServer(t, func(string, ssh.Channel) uint32 {
		<-release
		return 0
	})
	t.Cleanup(func() { close(release) })

	dev := srv.device()
	clientCfg, err := NewSSHFetcher(dev).clientConfig()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = runSSHCommand(ctx, net.JoinHostPort(srv.host, strconv.Itoa(srv.port)), clientCfg, dev.Command)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSSHFetcher_StalledDeviceUsesEveryAttempt(t *testing.T) {
	ln := listenLocal(t)
	var accepts atomic.Int32
	var mu sync.Mutex
	var conns []net.Conn
	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			accepts.Add(1)
			mu.Lock()
			conns = append(conns, conn) // held open, never answered
			mu.Unlock()
		}
	}()

	host, port := hostPort(t, ln)
	dev := config.Device{
		Host: host, Port: port, Username: "vyos", Password: "pw",
		Command: config.DefaultCommand, TimeoutSeconds: 1, Retries: 3,
	}
	f := NewSSHFetcher(dev)
	f.retry.BaseDelay = 10 * time.Millisecond
	f.retry.MaxDelay = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	start := time.Now()
	_, err := f.Fetch(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), accepts.Load())
	assert.Less(t, time.Since(start), 6*time.Second)
}
