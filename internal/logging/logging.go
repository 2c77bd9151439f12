package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "action-picker.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	session      string
	logPath      = defaultLogFile
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}

	traceMu.Lock()
	path := logPath
	traceMu.Unlock()
	f, ferr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if ferr != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", ferr)
		return
	}
	defer f.Close()

	log.SetOutput(f)
	log.Println(err)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// SetSession stamps subsequent trace entries with a picker session id.
func SetSession(id string) {
	traceMu.Lock()
	session = id
	traceMu.Unlock()
}

// Session returns the current session id.
func Session() string {
	traceMu.Lock()
	defer traceMu.Unlock()
	return session
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	traceMu.Lock()
	enabled := traceEnabled
	current := session
	path := logPath
	traceMu.Unlock()
	if !enabled {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Session string      `json:"session,omitempty"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Session: current,
		Event:   event,
		Payload: payload,
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}
