// Package output provides styled terminal output utilities for netaudit.
//
// It wraps charmbracelet/log for leveled logging and charmbracelet/lipgloss
// for severity colouring. Console output of commands goes through this
// package; report files are written by the audit package.
//
// Text output is suppressed in JSON mode (--json) and colours are dropped
// when NO_COLOR is set.
package output
