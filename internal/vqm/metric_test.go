// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetric_Names(t *testing.T) {
	tests := map[string]struct {
		given           Metric
		wantName        string
		wantDisplayName string
		wantTransformed bool
	}{
		"VMAF": {
			given:           VMAF,
			wantName:        "VMAF",
			wantDisplayName: "VMAF",
		},
		"PSNR": {
			given:           PSNR,
			wantName:        "PSNR",
			wantDisplayName: "PSNR",
		},
		"MS-SSIM": {
			given:           MS_SSIM,
			wantName:        "MS_SSIM",
			wantDisplayName: "1/(1-MS_SSIM)",
			wantTransformed: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantName, tc.given.String())
			assert.Equal(t, tc.wantDisplayName, tc.given.DisplayName())
			assert.Equal(t, tc.wantTransformed, tc.given.Transformed())
		})
	}
}

func TestExtract(t *testing.T) {
	fm := FrameMetrics{
		{FrameNum: 0, VMAF: 90, PSNR: 40, MS_SSIM: 0.98},
		{FrameNum: 3, VMAF: 92, PSNR: 41, MS_SSIM: 0.99},
		{FrameNum: 5, VMAF: 91, PSNR: 39, MS_SSIM: 0.5},
	}

	t.Run("Should pass VMAF through", func(t *testing.T) {
		got, err := Extract(fm, VMAF)
		require.NoError(t, err)
		assert.Equal(t, Series{{0, 90}, {3, 92}, {5, 91}}, got)
	})

	t.Run("Should pass PSNR through", func(t *testing.T) {
		got, err := Extract(fm, PSNR)
		require.NoError(t, err)
		assert.Equal(t, []float64{40, 41, 39}, got.Values())
	})

	t.Run("Should apply reciprocal distance to MS-SSIM", func(t *testing.T) {
		got, err := Extract(fm, MS_SSIM)
		require.NoError(t, err)
		require.Len(t, got, len(fm))
		for i, f := range fm {
			assert.Equal(t, f.FrameNum, got[i].FrameNum)
			assert.Equal(t, 1/(1-f.MS_SSIM), got[i].Value)
		}
		assert.InDelta(t, 50.0, got[0].Value, 1e-9)
		assert.InDelta(t, 100.0, got[1].Value, 1e-9)
		assert.InDelta(t, 2.0, got[2].Value, 1e-9)
	})

	t.Run("Series should be XYer", func(t *testing.T) {
		got, err := Extract(fm, VMAF)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Len())
		x, y := got.XY(1)
		assert.Equal(t, float64(3), x)
		assert.Equal(t, float64(92), y)
	})
}

func TestExtract_UnboundedSimilarity(t *testing.T) {
	fm := FrameMetrics{
		{FrameNum: 0, VMAF: 100, PSNR: 60, MS_SSIM: 0.999},
		{FrameNum: 1, VMAF: 100, PSNR: 60, MS_SSIM: 1},
	}

	_, err := Extract(fm, MS_SSIM)
	assert.ErrorIs(t, err, ErrUnboundedSimilarity)
	assert.ErrorContains(t, err, "MS_SSIM at frame 1")

	// Untransformed metrics have no such restriction.
	_, err = Extract(fm, VMAF)
	assert.NoError(t, err)
}
