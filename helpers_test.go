// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Reusable helpers and fixtures for tests.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/evolution-gaming/vqmchart/internal/logging"
)

var (
	twoFramesReport   = "testdata/vqm/two_frames.json"
	threeFramesReport = "testdata/vqm/three_frames.json"
	singleFrameReport = "testdata/vqm/single_frame.json"
	perfectSimReport  = "testdata/vqm/perfect_ms_ssim.json"
	libvmafReport     = "testdata/vqm/libvmaf_v2.3.1.json"
)

// fixWriteFile fixture writes payload into a file with given name in a temporary
// directory.
func fixWriteFile(t *testing.T, name string, payload []byte) (fPath string) {
	t.Helper()
	fPath = path.Join(t.TempDir(), name)
	if err := os.WriteFile(fPath, payload, fs.FileMode(0o644)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return fPath
}

// fixReportCopies fixture provides n copies of given report, named r0.json, r1.json ...
func fixReportCopies(t *testing.T, src string, n int) []string {
	t.Helper()
	payload, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("Unable to read source report: %v", err)
	}

	dir := t.TempDir()
	files := make([]string, 0, n)
	for i := 0; i < n; i++ {
		fPath := path.Join(dir, fmt.Sprintf("r%d.json", i))
		if err := os.WriteFile(fPath, payload, fs.FileMode(0o644)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		files = append(files, fPath)
	}
	return files
}

// fixCaptureLog fixture redirects info log into returned buffer for the duration of a
// test.
func fixCaptureLog(t *testing.T) *strings.Builder {
	t.Helper()
	var out strings.Builder
	logging.EnableInfoLogger()
	logging.SetOutput(&out)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.DisableDebugLogger()
	})
	return &out
}

// exitCodeOf returns exit code carried by err, it is 0 for nil error.
func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected *AppError, got %T: %v", err, err)
	}
	return appErr.ExitCode()
}

// fileExists is a helper to check that file exists and is a regular file.
func fileExists(fPath string) bool {
	fi, err := os.Stat(fPath)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
