package output

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	logger *log.Logger
	logOut io.Writer = os.Stderr

	// JSONMode suppresses human-oriented output; commands print a JSON
	// envelope on stdout instead.
	JSONMode bool

	// Verbose enables debug-level logging (-v).
	Verbose bool
)

// Init applies the global output flags. Commands call it before doing any
// work.
func Init(verbose bool, jsonMode bool) {
	mu.Lock()
	defer mu.Unlock()
	Verbose = verbose
	JSONMode = jsonMode
	logger = newLogger()
}

// SetOutput redirects log and spinner output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	logOut = w
	logger = newLogger()
}

// Writer returns the destination of log and spinner output.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return logOut
}

// newLogger must be called with mu held.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if Verbose {
		level = log.DebugLevel
	}
	l := log.NewWithOptions(logOut, log.Options{Level: level})
	if NoColor() {
		l.SetStyles(plainStyles())
	}
	return l
}

func emit(level log.Level, msg string, keyvals ...interface{}) {
	if JSONMode {
		return
	}
	mu.Lock()
	if logger == nil {
		logger = newLogger()
	}
	l := logger
	mu.Unlock()
	l.Log(level, msg, keyvals...)
}

// mark returns the emoji prefix, or its ASCII form under NO_COLOR.
func mark(emoji, plain string) string {
	if NoColor() {
		return plain
	}
	return emoji
}

func Info(msg string, keyvals ...interface{})  { emit(log.InfoLevel, msg, keyvals...) }
func Warn(msg string, keyvals ...interface{})  { emit(log.WarnLevel, msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals...) }

// Debug is only visible with -v.
func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals...) }

// Success logs msg at info level with a check mark.
func Success(msg string) { emit(log.InfoLevel, mark("✅", "[OK]")+" "+msg) }

// Fail logs msg at error level with a cross.
func Fail(msg string) { emit(log.ErrorLevel, mark("❌", "[FAIL]")+" "+msg) }
