// Package prompt asks the operator for values that are missing from the
// configuration, such as the device password.
package prompt

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl+C.
var ErrCancelled = terminal.InterruptErr

// ValidateNonEmpty ensures a required value is provided.
func ValidateNonEmpty(value interface{}) error {
	if strings.TrimSpace(fmt.Sprintf("%v", value)) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// Prompter abstracts user interaction for testing.
type Prompter interface {
	Input(label, defaultValue string) (string, error)
	Password(label string) (string, error)
}

// SurveyPrompter implements Prompter with survey/v2.
type SurveyPrompter struct{}

// NewSurveyPrompter returns a survey-based prompter.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

func (p *SurveyPrompter) Input(label, defaultValue string) (string, error) {
	var value string
	err := survey.AskOne(&survey.Input{
		Message: label,
		Default: defaultValue,
	}, &value, survey.WithValidator(ValidateNonEmpty))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (p *SurveyPrompter) Password(label string) (string, error) {
	var value string
	err := survey.AskOne(&survey.Password{
		Message: label,
	}, &value, survey.WithValidator(ValidateNonEmpty))
	if err != nil {
		return "", err
	}
	return value, nil
}

// DeviceCredentials fills in the username and password when they are empty.
// Values already set are returned unchanged and not asked for.
func DeviceCredentials(p Prompter, host, username, password string) (string, string, error) {
	var err error
	if strings.TrimSpace(username) == "" {
		username, err = p.Input(fmt.Sprintf("SSH username for %s:", host), "")
		if err != nil {
			return "", "", err
		}
	}
	if password == "" {
		password, err = p.Password(fmt.Sprintf("SSH password for %s@%s:", username, host))
		if err != nil {
			return "", "", err
		}
	}
	return username, password, nil
}
