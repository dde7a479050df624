package audit

import (
	"regexp"
	"strings"
)

const (
	plaintextPasswordMarker = "plaintext-password"
	telnetServiceMarker     = "service telnet"
	sshServiceMarker        = "set service ssh"

	noActionNeeded = "No action needed."
)

var disabledInterfaceLine = regexp.MustCompile(`^set interfaces (\S+) (\S+) disable$`)

type staticRule struct {
	id          string
	description string
	eval        func(string) Finding
}

func (r staticRule) ID() string          { return r.id }
func (r staticRule) Description() string { return r.description }
func (r staticRule) Evaluate(config string) Finding {
	return r.eval(config)
}

func defaultRules() []Rule {
	return []Rule{
		rulePlaintextPassword(),
		ruleTelnetService(),
		ruleSSHService(),
		ruleDisabledInterfaces(),
	}
}

func rulePlaintextPassword() Rule {
	return staticRule{id: "AUTH-001", description: "Plaintext user credentials", eval: func(config string) Finding {
		if strings.Contains(config, plaintextPasswordMarker) {
			return Finding{Severity: SeverityHigh, Message: "Plaintext user password found.", Recommendation: "Use encrypted-password instead of plaintext-password."}
		}
		return Finding{Severity: SeverityInfo, Message: "No plaintext user passwords found.", Recommendation: noActionNeeded}
	}}
}

func ruleTelnetService() Rule {
	return staticRule{id: "SVC-001", description: "Telnet service exposure", eval: func(config string) Finding {
		if strings.Contains(config, telnetServiceMarker) {
			return Finding{Severity: SeverityHigh, Message: "Telnet service is enabled (INSECURE).", Recommendation: "Disable Telnet: delete service telnet"}
		}
		return Finding{Severity: SeverityInfo, Message: "Telnet service is not enabled.", Recommendation: noActionNeeded}
	}}
}

func ruleSSHService() Rule {
	return staticRule{id: "SVC-002", description: "SSH management access", eval: func(config string) Finding {
		if !strings.Contains(config, sshServiceMarker) {
			return Finding{Severity: SeverityMedium, Message: "SSH is NOT enabled.", Recommendation: "Enable SSH: set service ssh"}
		}
		return Finding{Severity: SeverityInfo, Message: "SSH is enabled.", Recommendation: noActionNeeded}
	}}
}

func ruleDisabledInterfaces() Rule {
	return staticRule{id: "IF-001", description: "Administratively disabled interfaces", eval: func(config string) Finding {
		disabled := disabledInterfaces(config)
		if len(disabled) > 0 {
			return Finding{Severity: SeverityLow, Message: "Disabled interfaces detected: " + strings.Join(disabled, ", "), Recommendation: "Enable interfaces only if needed; remove unused interface definitions."}
		}
		return Finding{Severity: SeverityInfo, Message: "No disabled interfaces found.", Recommendation: noActionNeeded}
	}}
}

// disabledInterfaces returns "type name" for every line of the form
// "set interfaces <type> <name> disable", in input order.
func disabledInterfaces(config string) []string {
	var out []string
	for _, line := range strings.Split(config, "\n") {
		m := disabledInterfaceLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		out = append(out, m[1]+" "+m[2])
	}
	return out
}
