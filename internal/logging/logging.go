// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Poor man's logging. Implements 2-level loggers for Info and Debug. Minimal
// wrap around standard library's "log" package.
package logging

import (
	"fmt"
	"io"
	"log"
	"sync"
)

var (
	debugFlags = log.Ldate | log.Ltime | log.Lshortfile
	infoFlags  = log.Ldate | log.Ltime
	// Each log-level logger should be explicitly enabled via call to Enable*Logger().
	DebugLogger = log.New(io.Discard, debugPrefix, debugFlags)
	InfoLogger  = log.New(io.Discard, infoPrefix, infoFlags)

	mu           sync.Mutex
	output       io.Writer = log.Default().Writer()
	infoEnabled  bool
	debugEnabled bool
)

const (
	debugPrefix = "DEBUG: "
	infoPrefix  = "INFO: "
	calldepth   = 2
)

// apply points enabled loggers to current output and disabled ones to io.Discard.
// Caller must hold mu.
func apply() {
	InfoLogger.SetOutput(io.Discard)
	DebugLogger.SetOutput(io.Discard)
	if infoEnabled {
		InfoLogger.SetOutput(output)
	}
	if debugEnabled {
		DebugLogger.SetOutput(output)
	}
}

// SetOutput redirects all enabled loggers to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	apply()
}

// EnableInfoLogger helper function to explicitly enable InfoLogger.
func EnableInfoLogger() {
	mu.Lock()
	defer mu.Unlock()
	infoEnabled = true
	apply()
}

// EnableDebugLogger helper function to explicitly enable DebugLogger.
func EnableDebugLogger() {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = true
	apply()
}

// DisableDebugLogger turns DebugLogger off again.
func DisableDebugLogger() {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = false
	apply()
}

func Info(v ...interface{}) {
	InfoLogger.Output(calldepth, fmt.Sprint(v...))
}

func Infof(format string, v ...interface{}) {
	InfoLogger.Output(calldepth, fmt.Sprintf(format, v...))
}

func Debug(v ...interface{}) {
	DebugLogger.Output(calldepth, fmt.Sprint(v...))
}

func Debugf(format string, v ...interface{}) {
	DebugLogger.Output(calldepth, fmt.Sprintf(format, v...))
}
