// Package doctor implements preflight checks for netaudit.
//
// It verifies that the configuration loads and validates, that the device
// can be reached on its SSH port, that host key verification is usable, and
// that the report destinations are writable, before an audit is attempted.
package doctor

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/SuyashParmar/network-auditor/internal/config"
)

// Status represents the outcome of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusWarn Status = "warn"
	StatusSkip Status = "skip"
)

// CheckResult is the outcome of running a single preflight check.
type CheckResult struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// Check defines a single preflight check.
type Check struct {
	Name     string
	Category string // "config", "device", "reports"
	Critical bool   // if true, failure => non-zero exit
	Run      func(ctx context.Context, env *Env) CheckResult
}

// DialFunc opens a network connection. It is swapped out in tests.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Env is what the checks inspect.
type Env struct {
	Config     *config.Config
	ConfigPath string // empty when no config file was found
	Dial       DialFunc
}

// NewEnv returns an Env that dials with the device timeout.
func NewEnv(cfg *config.Config, configPath string) *Env {
	dialer := &net.Dialer{Timeout: cfg.Device.Timeout()}
	return &Env{Config: cfg, ConfigPath: configPath, Dial: dialer.DialContext}
}

// Summary holds the aggregated results of all checks.
type Summary struct {
	Results    []CheckResult `json:"results"`
	TotalPass  int           `json:"totalPass"`
	TotalFail  int           `json:"totalFail"`
	TotalWarn  int           `json:"totalWarn"`
	TotalSkip  int           `json:"totalSkip"`
	HasFailure bool          `json:"hasFailure"`
}

// RunAll executes all checks and returns a summary.
func RunAll(ctx context.Context, env *Env) Summary {
	checks := AllChecks()
	results := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		results = append(results, c.Run(ctx, env))
	}
	return buildSummary(results, checks)
}

func buildSummary(results []CheckResult, checks []Check) Summary {
	s := Summary{Results: results}
	for i, r := range results {
		switch r.Status {
		case StatusPass:
			s.TotalPass++
		case StatusFail:
			s.TotalFail++
			if checks[i].Critical {
				s.HasFailure = true
			}
		case StatusWarn:
			s.TotalWarn++
		case StatusSkip:
			s.TotalSkip++
		}
	}
	return s
}

// AllChecks returns the ordered list of preflight checks.
func AllChecks() []Check {
	return []Check{
		checkConfigFile(),
		checkSchema(),
		checkDeviceHost(),
		checkCredentials(),
		checkKnownHosts(),
		checkReachable(),
		checkReportPath("text-report", func(c *config.Config) string { return c.Reports.Text }),
		checkReportPath("json-report", func(c *config.Config) string { return c.Reports.JSON }),
	}
}

// --- Config checks ---

func checkConfigFile() Check {
	return Check{
		Name:     "config-file",
		Category: "config",
		Critical: false,
		Run: func(_ context.Context, env *Env) CheckResult {
			if env.ConfigPath == "" {
				return CheckResult{
					Name:    "config-file",
					Status:  StatusWarn,
					Message: "no netaudit.yaml found; using defaults and NETAUDIT_* variables",
					Fix:     "Run: netaudit init",
				}
			}
			return CheckResult{
				Name:    "config-file",
				Status:  StatusPass,
				Message: fmt.Sprintf("config loaded from %s", env.ConfigPath),
			}
		},
	}
}

func checkSchema() Check {
	return Check{
		Name:     "config-schema",
		Category: "config",
		Critical: true,
		Run: func(_ context.Context, env *Env) CheckResult {
			result, err := config.Validate(env.Config)
			if err != nil {
				return CheckResult{
					Name:    "config-schema",
					Status:  StatusFail,
					Message: fmt.Sprintf("schema validation could not run: %v", err),
				}
			}
			if !result.Valid {
				return CheckResult{
					Name:    "config-schema",
					Status:  StatusFail,
					Message: "configuration does not match the schema: " + result.Summary(),
					Fix:     "Run: netaudit schema validate",
				}
			}
			return CheckResult{Name: "config-schema", Status: StatusPass, Message: "configuration matches the schema"}
		},
	}
}

// --- Device checks ---

func checkDeviceHost() Check {
	return Check{
		Name:     "device-host",
		Category: "device",
		Critical: true,
		Run: func(_ context.Context, env *Env) CheckResult {
			if strings.TrimSpace(env.Config.Device.Host) == "" {
				return CheckResult{
					Name:    "device-host",
					Status:  StatusFail,
					Message: "device.host is not set",
					Fix:     "Set device.host in netaudit.yaml or NETAUDIT_DEVICE_HOST",
				}
			}
			return CheckResult{
				Name:    "device-host",
				Status:  StatusPass,
				Message: fmt.Sprintf("device %s port %d", env.Config.Device.Host, env.Config.Device.Port),
			}
		},
	}
}

func checkCredentials() Check {
	return Check{
		Name:     "credentials",
		Category: "device",
		Critical: false,
		Run: func(_ context.Context, env *Env) CheckResult {
			d := env.Config.Device
			var missing []string
			if strings.TrimSpace(d.Username) == "" {
				missing = append(missing, "username")
			}
			if d.Password == "" {
				missing = append(missing, "password")
			}
			if len(missing) > 0 {
				return CheckResult{
					Name:    "credentials",
					Status:  StatusWarn,
					Message: fmt.Sprintf("SSH %s not configured; it will be prompted for (fails with --ci)", strings.Join(missing, " and ")),
					Fix:     "Set device.username and export NETAUDIT_DEVICE_PASSWORD",
				}
			}
			return CheckResult{Name: "credentials", Status: StatusPass, Message: fmt.Sprintf("SSH credentials set for %s", d.Username)}
		},
	}
}

func checkKnownHosts() Check {
	return Check{
		Name:     "known-hosts",
		Category: "device",
		Critical: true,
		Run: func(_ context.Context, env *Env) CheckResult {
			path := env.Config.Device.KnownHostsFile
			if path == "" {
				return CheckResult{
					Name:    "known-hosts",
					Status:  StatusWarn,
					Message: "host key verification is disabled",
					Fix:     "Set device.knownHostsFile (e.g. ~/.ssh/known_hosts)",
				}
			}
			if _, err := knownhosts.New(path); err != nil {
				return CheckResult{
					Name:    "known-hosts",
					Status:  StatusFail,
					Message: fmt.Sprintf("cannot load %s: %v", path, err),
					Fix:     "Fix or regenerate the file with ssh-keyscan",
				}
			}
			return CheckResult{Name: "known-hosts", Status: StatusPass, Message: fmt.Sprintf("host keys loaded from %s", path)}
		},
	}
}

func checkReachable() Check {
	return Check{
		Name:     "ssh-port",
		Category: "device",
		Critical: true,
		Run: func(ctx context.Context, env *Env) CheckResult {
			d := env.Config.Device
			if strings.TrimSpace(d.Host) == "" {
				return CheckResult{Name: "ssh-port", Status: StatusSkip, Message: "skipped: no device host"}
			}
			addr := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
			conn, err := env.Dial(ctx, "tcp", addr)
			if err != nil {
				return CheckResult{
					Name:    "ssh-port",
					Status:  StatusFail,
					Message: fmt.Sprintf("cannot reach %s: %v", addr, err),
					Fix:     "Check the address, firewall rules and that 'set service ssh' is configured",
				}
			}
			_ = conn.Close()
			return CheckResult{Name: "ssh-port", Status: StatusPass, Message: fmt.Sprintf("%s is reachable", addr)}
		},
	}
}

// --- Report checks ---

func checkReportPath(name string, path func(*config.Config) string) Check {
	return Check{
		Name:     name,
		Category: "reports",
		Critical: true,
		Run: func(_ context.Context, env *Env) CheckResult {
			dir := filepath.Dir(path(env.Config))
			info, err := os.Stat(dir)
			if os.IsNotExist(err) {
				return CheckResult{
					Name:    name,
					Status:  StatusWarn,
					Message: fmt.Sprintf("directory %s does not exist; it will be created", dir),
				}
			}
			if err != nil || !info.IsDir() {
				return CheckResult{
					Name:    name,
					Status:  StatusFail,
					Message: fmt.Sprintf("%s is not a usable directory", dir),
					Fix:     "Point reports." + strings.TrimSuffix(name, "-report") + " at a writable location",
				}
			}
			tmp, err := os.CreateTemp(dir, ".netaudit-write-*")
			if err != nil {
				return CheckResult{
					Name:    name,
					Status:  StatusFail,
					Message: fmt.Sprintf("directory %s is not writable: %v", dir, err),
					Fix:     "Point reports." + strings.TrimSuffix(name, "-report") + " at a writable location",
				}
			}
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return CheckResult{Name: name, Status: StatusPass, Message: fmt.Sprintf("%s is writable", dir)}
		},
	}
}
