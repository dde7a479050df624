// Package config provides the configuration schema, loader, validator, and
// default values for netaudit.yaml.
package config

import "time"

// Config is the root struct matching netaudit.yaml.
type Config struct {
	Device  Device  `yaml:"device" json:"device"`
	Reports Reports `yaml:"reports" json:"reports"`
}

// Device describes how to reach the router and retrieve its configuration.
type Device struct {
	Host           string `yaml:"host" json:"host"`
	Port           int    `yaml:"port" json:"port"`
	Username       string `yaml:"username" json:"username"`
	Password       string `yaml:"password,omitempty" json:"password,omitempty"` // prefer NETAUDIT_DEVICE_PASSWORD
	Command        string `yaml:"command" json:"command"`                       // command that dumps the running config
	TimeoutSeconds int    `yaml:"timeoutSeconds" json:"timeoutSeconds"`
	Retries        int    `yaml:"retries" json:"retries"` // total attempts, not extra ones
	KnownHostsFile string `yaml:"knownHostsFile,omitempty" json:"knownHostsFile,omitempty"`
}

// Timeout returns the connection timeout as a duration.
func (d Device) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// Reports holds the output paths of an audit run.
type Reports struct {
	Text     string `yaml:"text" json:"text"`
	JSON     string `yaml:"json" json:"json"`
	Snapshot string `yaml:"snapshot,omitempty" json:"snapshot,omitempty"` // raw config dump; empty disables it
}
