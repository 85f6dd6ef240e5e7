// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqm

import (
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	metricsFile = "../../testdata/vqm/libvmaf_v2.3.1.json"
	// Expected count of metrics from metricsFile.
	wantMetricCount = 4
	twoFramesFile   = "../../testdata/vqm/two_frames.json"
)

func TestFrameMetrics_FromFfmpegVMAF(t *testing.T) {
	var got FrameMetrics

	fd, err := os.Open(metricsFile)
	require.NoError(t, err)
	defer fd.Close()

	err = got.FromFfmpegVMAF(fd)
	require.NoError(t, err)

	t.Run("Should have correct metrics count", func(t *testing.T) {
		assert.Len(t, got, wantMetricCount)
	})

	t.Run("FrameMetric should have correct fields", func(t *testing.T) {
		for _, v := range got {
			assert.Greater(t, v.VMAF, float64(0), "VMAF should be positive")
			assert.Greater(t, v.PSNR, float64(0), "PSNR should be positive")
			assert.Greater(t, v.MS_SSIM, float64(0), "MS-SSIM should be positive")
		}
	})

	t.Run("Should pick metric aliases", func(t *testing.T) {
		assert.Equal(t, 43.114720, got[0].PSNR)
		assert.Equal(t, 0.991355, got[0].MS_SSIM)
	})

	t.Run("Should keep file order and frame numbers", func(t *testing.T) {
		// Frame numbers in fixture are not contiguous on purpose.
		var frameNums []uint
		for _, v := range got {
			frameNums = append(frameNums, v.FrameNum)
		}
		assert.Equal(t, []uint{0, 1, 2, 4}, frameNums)
	})
}

func TestLoadReport(t *testing.T) {
	got, err := LoadReport(twoFramesFile)
	require.NoError(t, err)

	want := FrameMetrics{
		{FrameNum: 0, VMAF: 90, PSNR: 40, MS_SSIM: 0.98},
		{FrameNum: 1, VMAF: 92, PSNR: 41, MS_SSIM: 0.99},
	}
	assert.Equal(t, want, got)
}

func TestLoadReport_Negative(t *testing.T) {
	t.Run("Should fail for non-existent file", func(t *testing.T) {
		_, err := LoadReport(path.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should fail for directory", func(t *testing.T) {
		_, err := LoadReport(t.TempDir())
		assert.ErrorIs(t, err, ErrIsDirectory)
	})

	tests := map[string]struct {
		given string
		want  string
	}{
		"Empty file": {
			given: ``,
			want:  "unmarshal JSON",
		},
		"Not JSON": {
			given: `frames: []`,
			want:  "unmarshal JSON",
		},
		"Top level array": {
			given: `[{"frameNum": 0}]`,
			want:  "unmarshal JSON",
		},
		"Missing frames key": {
			given: `{"version": "2.3.1"}`,
			want:  `no "frames" key`,
		},
		"No frames": {
			given: `{"frames": []}`,
			want:  "report has no frames",
		},
		"Missing frameNum": {
			given: `{"frames": [{"metrics": {"vmaf": 1, "psnr": 2, "ms_ssim": 0.5}}]}`,
			want:  "missing frameNum",
		},
		"Negative frameNum": {
			given: `{"frames": [{"frameNum": -1, "metrics": {"vmaf": 1, "psnr": 2, "ms_ssim": 0.5}}]}`,
			want:  "unmarshal JSON",
		},
		"Fractional frameNum": {
			given: `{"frames": [{"frameNum": 1.5, "metrics": {"vmaf": 1, "psnr": 2, "ms_ssim": 0.5}}]}`,
			want:  "unmarshal JSON",
		},
		"Missing metrics": {
			given: `{"frames": [{"frameNum": 0}]}`,
			want:  "missing metrics",
		},
		"Missing vmaf": {
			given: `{"frames": [{"frameNum": 0, "metrics": {"psnr": 2, "ms_ssim": 0.5}}]}`,
			want:  "missing vmaf metric",
		},
		"Missing psnr": {
			given: `{"frames": [{"frameNum": 0, "metrics": {"vmaf": 1, "ms_ssim": 0.5}}]}`,
			want:  "missing psnr metric",
		},
		"Null ms_ssim": {
			given: `{"frames": [{"frameNum": 0, "metrics": {"vmaf": 1, "psnr": 2, "ms_ssim": null}}]}`,
			want:  "missing ms_ssim metric",
		},
		"String metric value": {
			given: `{"frames": [{"frameNum": 0, "metrics": {"vmaf": "1", "psnr": 2, "ms_ssim": 0.5}}]}`,
			want:  "metric vmaf",
		},
		"Second frame broken": {
			given: `{"frames": [
				{"frameNum": 0, "metrics": {"vmaf": 1, "psnr": 2, "ms_ssim": 0.5}},
				{"frameNum": 1, "metrics": {"vmaf": 1, "psnr": 2}}
			]}`,
			want: "frame entry 1",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			fPath := path.Join(t.TempDir(), "report.json")
			require.NoError(t, os.WriteFile(fPath, []byte(tc.given), 0o600))

			got, err := LoadReport(fPath)
			assert.ErrorIs(t, err, ErrParse)
			assert.ErrorContains(t, err, tc.want)
			assert.Nil(t, got, "No partial report expected")
		})
	}
}

func TestFrameMetrics_FromFfmpegVMAF_IgnoresUnknownKeys(t *testing.T) {
	given := `{
		"version": "2.3.1",
		"frames": [{"frameNum": 7, "extra": true, "metrics": {"vmaf": 1, "psnr": 2, "ms_ssim": 0.5, "integer_vif_scale0": 0.9}}],
		"pooled_metrics": {}
	}`

	var got FrameMetrics
	require.NoError(t, got.FromFfmpegVMAF(strings.NewReader(given)))
	assert.Equal(t, FrameMetrics{{FrameNum: 7, VMAF: 1, PSNR: 2, MS_SSIM: 0.5}}, got)
}
