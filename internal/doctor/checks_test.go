package doctor

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuyashParmar/network-auditor/internal/config"
	"github.com/SuyashParmar/network-auditor/internal/output"
)

func TestMain(m *testing.M) {
	data, err := os.ReadFile(filepath.Join("..", "..", "schemas", "netaudit-v1.schema.json"))
	if err != nil {
		panic(err)
	}
	config.SetSchema(data)
	os.Exit(m.Run())
}

// fakeDialer records dialed addresses and fails when err is set.
type fakeDialer struct {
	dialed []string
	err    error
}

func (f *fakeDialer) Dial(_ context.Context, _, addr string) (net.Conn, error) {
	f.dialed = append(f.dialed, addr)
	if f.err != nil {
		return nil, f.err
	}
	client, server := net.Pipe()
	_ = server.Close()
	return client, nil
}

func readyEnv(t *testing.T) (*Env, *fakeDialer) {
	t.Helper()
	dir := t.TempDir()
	knownHosts := filepath.Join(dir, "known_hosts")
	require.NoError(t, os.WriteFile(knownHosts, nil, 0o600))

	cfg := config.Default()
	cfg.Device.Host = "192.0.2.10"
	cfg.Device.Username = "vyos"
	cfg.Device.Password = "pw"
	cfg.Device.KnownHostsFile = knownHosts
	cfg.Reports.Text = filepath.Join(dir, "audit_report.txt")
	cfg.Reports.JSON = filepath.Join(dir, "audit_report.json")

	d := &fakeDialer{}
	return &Env{Config: cfg, ConfigPath: filepath.Join(dir, "netaudit.yaml"), Dial: d.Dial}, d
}

func resultByName(t *testing.T, s Summary, name string) CheckResult {
	t.Helper()
	for _, r := range s.Results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no result named %s", name)
	return CheckResult{}
}

func TestRunAll_AllPass(t *testing.T) {
	env, d := readyEnv(t)

	s := RunAll(context.Background(), env)
	assert.False(t, s.HasFailure)
	assert.Equal(t, len(AllChecks()), s.TotalPass)
	assert.Equal(t, []string{"192.0.2.10:22"}, d.dialed)
}

func TestRunAll_ResultsFollowCheckOrder(t *testing.T) {
	env, _ := readyEnv(t)
	s := RunAll(context.Background(), env)

	checks := AllChecks()
	require.Len(t, s.Results, len(checks))
	for i, c := range checks {
		assert.Equal(t, c.Name, s.Results[i].Name)
	}
}

func TestCheckReachable_Unreachable(t *testing.T) {
	env, d := readyEnv(t)
	d.err = errors.New("connection refused")

	s := RunAll(context.Background(), env)
	r := resultByName(t, s, "ssh-port")
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "connection refused")
	assert.True(t, s.HasFailure)
}

func TestCheckDeviceHost_Missing(t *testing.T) {
	env, d := readyEnv(t)
	env.Config.Device.Host = ""

	s := RunAll(context.Background(), env)
	assert.Equal(t, StatusFail, resultByName(t, s, "device-host").Status)
	assert.Equal(t, StatusSkip, resultByName(t, s, "ssh-port").Status)
	assert.Empty(t, d.dialed)
	assert.True(t, s.HasFailure)
}

func TestCheckCredentials_MissingIsWarning(t *testing.T) {
	env, _ := readyEnv(t)
	env.Config.Device.Password = ""

	s := RunAll(context.Background(), env)
	r := resultByName(t, s, "credentials")
	assert.Equal(t, StatusWarn, r.Status)
	assert.Contains(t, r.Message, "password")
	assert.False(t, s.HasFailure)
}

func TestCheckKnownHosts(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		env, _ := readyEnv(t)
		env.Config.Device.KnownHostsFile = ""
		r := resultByName(t, RunAll(context.Background(), env), "known-hosts")
		assert.Equal(t, StatusWarn, r.Status)
	})

	t.Run("missing file", func(t *testing.T) {
		env, _ := readyEnv(t)
		env.Config.Device.KnownHostsFile = filepath.Join(t.TempDir(), "nope")
		r := resultByName(t, RunAll(context.Background(), env), "known-hosts")
		assert.Equal(t, StatusFail, r.Status)
	})
}

func TestCheckSchema_Invalid(t *testing.T) {
	env, _ := readyEnv(t)
	env.Config.Device.Retries = 50

	s := RunAll(context.Background(), env)
	r := resultByName(t, s, "config-schema")
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "retries")
}

func TestCheckConfigFile_Absent(t *testing.T) {
	env, _ := readyEnv(t)
	env.ConfigPath = ""
	r := resultByName(t, RunAll(context.Background(), env), "config-file")
	assert.Equal(t, StatusWarn, r.Status)
}

func TestCheckReportPath(t *testing.T) {
	t.Run("directory will be created", func(t *testing.T) {
		env, _ := readyEnv(t)
		env.Config.Reports.Text = filepath.Join(t.TempDir(), "new", "audit_report.txt")
		r := resultByName(t, RunAll(context.Background(), env), "text-report")
		assert.Equal(t, StatusWarn, r.Status)
	})

	t.Run("parent is a file", func(t *testing.T) {
		env, _ := readyEnv(t)
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))
		env.Config.Reports.JSON = filepath.Join(blocker, "audit_report.json")
		s := RunAll(context.Background(), env)
		assert.Equal(t, StatusFail, resultByName(t, s, "json-report").Status)
		assert.True(t, s.HasFailure)
	})
}

func TestPrintResults_Text(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	output.Init(false, false)
	env, _ := readyEnv(t)
	env.Config.Device.Password = ""

	var buf bytes.Buffer
	PrintResults(&buf, RunAll(context.Background(), env))
	out := buf.String()
	assert.Contains(t, out, "--- Configuration ---")
	assert.Contains(t, out, "--- Device Access ---")
	assert.Contains(t, out, "--- Report Output ---")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "Fix: Set device.username and export NETAUDIT_DEVICE_PASSWORD")
}

func TestPrintResults_JSON(t *testing.T) {
	output.Init(false, true)
	defer output.Init(false, false)
	env, _ := readyEnv(t)

	var buf bytes.Buffer
	PrintResults(&buf, RunAll(context.Background(), env))
	assert.Contains(t, buf.String(), `"status": "ok"`)
	assert.Contains(t, buf.String(), `"totalPass"`)
}

func TestStatusIcon_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "[PASS]", StatusIcon(StatusPass))
	assert.Equal(t, "[FAIL]", StatusIcon(StatusFail))
	assert.Equal(t, "[WARN]", StatusIcon(StatusWarn))
	assert.Equal(t, "[SKIP]", StatusIcon(StatusSkip))
}
