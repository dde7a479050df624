package audit

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_EmptyInput(t *testing.T) {
	findings := Evaluate("")
	require.Len(t, findings, 5)

	assert.Equal(t, SeverityInfo, findings[0].Severity)
	assert.Equal(t, "Security Score: 90/100", findings[0].Message)
	assert.Equal(t, scoreRecommendation, findings[0].Recommendation)

	assert.Equal(t, SeverityInfo, findings[1].Severity)
	assert.Equal(t, SeverityInfo, findings[2].Severity)
	assert.Equal(t, SeverityMedium, findings[3].Severity)
	assert.Equal(t, "SSH is NOT enabled.", findings[3].Message)
	assert.Equal(t, SeverityInfo, findings[4].Severity)
	assert.Equal(t, "No disabled interfaces found.", findings[4].Message)
}

func TestEvaluate_TelnetAndSSH(t *testing.T) {
	findings := Evaluate("set service telnet\nset service ssh\n")
	require.Len(t, findings, 5)

	assert.Equal(t, "Security Score: 90/100", findings[0].Message)
	assert.Equal(t, SeverityInfo, findings[1].Severity)
	assert.Equal(t, SeverityHigh, findings[2].Severity)
	assert.Equal(t, SeverityInfo, findings[3].Severity)
	assert.Equal(t, SeverityInfo, findings[4].Severity)
}

func TestEvaluate_MultipleDisabledInterfaces(t *testing.T) {
	config := strings.Join([]string{
		"set service ssh",
		"set interfaces ethernet eth0 disable",
		"set interfaces ethernet eth1 disable",
	}, "\n")

	findings := Evaluate(config)
	require.Len(t, findings, 5)
	assert.Equal(t, SeverityLow, findings[4].Severity)
	assert.Contains(t, findings[4].Message, "ethernet eth0, ethernet eth1")
	assert.Equal(t, "Security Score: 100/100", findings[0].Message)
}

func TestEvaluate_PlaintextWithSSH(t *testing.T) {
	findings := Evaluate("set system login user admin authentication plaintext-password x\nset service ssh port 22")
	require.Len(t, findings, 5)

	assert.Equal(t, "Security Score: 90/100", findings[0].Message)
	assert.Equal(t, SeverityHigh, findings[1].Severity)
	assert.Equal(t, "Plaintext user password found.", findings[1].Message)
	assert.Equal(t, SeverityInfo, findings[2].Severity)
	assert.Equal(t, SeverityInfo, findings[3].Severity)
	assert.Equal(t, SeverityInfo, findings[4].Severity)
}

func TestEvaluate_OrderIndependentOfText(t *testing.T) {
	a := Evaluate("set interfaces ethernet eth0 disable\nset service telnet\nplaintext-password")
	b := Evaluate("plaintext-password\nset service telnet\nset interfaces ethernet eth0 disable")
	assert.Equal(t, a, b)
	assert.Equal(t, "Security Score: 70/100", a[0].Message)
}

func TestEvaluate_Deterministic(t *testing.T) {
	config := "set service telnet\nset interfaces ethernet eth2 disable"
	first, err := RenderJSON(Evaluate(config))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := RenderJSON(Evaluate(config))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	engine := NewEngine()
	inputs := []string{"", "set service ssh", "set service telnet", "plaintext-password"}
	want := make([][]Finding, len(inputs))
	for i, in := range inputs {
		want[i] = engine.Evaluate(in)
	}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		for i, in := range inputs {
			wg.Add(1)
			go func(i int, in string) {
				defer wg.Done()
				assert.Equal(t, want[i], engine.Evaluate(in))
			}(i, in)
		}
	}
	wg.Wait()
}

func TestEngineWithRules(t *testing.T) {
	engine := NewEngineWithRules([]Rule{ruleSSHService(), ruleTelnetService()})
	findings := engine.Evaluate("set service telnet")
	require.Len(t, findings, 3)
	assert.Equal(t, "Security Score: 80/100", findings[0].Message)
	assert.Equal(t, SeverityMedium, findings[1].Severity)
	assert.Equal(t, SeverityHigh, findings[2].Severity)

	rules := engine.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "SVC-002", rules[0].ID())
}
