// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Video frame related abstractions and libvmaf JSON report loading.

package vqm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

var (
	ErrNotFound    = errors.New("report file does not exist")
	ErrIsDirectory = errors.New("report path is a directory")
	ErrParse       = errors.New("malformed report")
)

// FrameMetric contains VQMs for a single frame.
type FrameMetric struct {
	FrameNum uint
	VMAF     float64
	PSNR     float64
	MS_SSIM  float64
}

// FrameMetrics is a whole report: per frame VQMs in the order they appear in the
// source file.
type FrameMetrics []FrameMetric

// LoadReport will read and parse libvmaf JSON report file.
func LoadReport(fPath string) (FrameMetrics, error) {
	fi, err := os.Stat(fPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", fPath, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("LoadReport() stat: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s: %w", fPath, ErrIsDirectory)
	}

	fd, err := os.Open(fPath)
	if err != nil {
		return nil, fmt.Errorf("LoadReport() open: %w", err)
	}
	defer fd.Close()

	var fm FrameMetrics
	if err := fm.FromFfmpegVMAF(fd); err != nil {
		return nil, fmt.Errorf("%s: %w", fPath, err)
	}
	return fm, nil
}

// FromFfmpegVMAF will Unmarshal libvmaf's JSON into FrameMetrics.
//
// Every frame must carry frameNum and all three metrics, a single incomplete frame
// fails the whole report.
func (fm *FrameMetrics) FromFfmpegVMAF(jsonReader io.Reader) error {
	b, err := io.ReadAll(jsonReader)
	if err != nil {
		return fmt.Errorf("FromFfmpegVMAF() reading: %w", err)
	}
	res := &ffmpegVMAFResult{}

	if err := json.Unmarshal(b, res); err != nil {
		return fmt.Errorf("FromFfmpegVMAF() unmarshal JSON: %w: %w", ErrParse, err)
	}

	if res.Frames == nil {
		return fmt.Errorf("FromFfmpegVMAF() no \"frames\" key: %w", ErrParse)
	}
	if len(*res.Frames) == 0 {
		return fmt.Errorf("FromFfmpegVMAF() report has no frames: %w", ErrParse)
	}

	for i, v := range *res.Frames {
		if err := v.validate(); err != nil {
			return fmt.Errorf("FromFfmpegVMAF() frame entry %d: %w: %w", i, ErrParse, err)
		}
		*fm = append(*fm, FrameMetric{
			FrameNum: *v.FrameNum,
			VMAF:     *v.Metrics.VMAF,
			PSNR:     *v.Metrics.PSNR,
			MS_SSIM:  *v.Metrics.MS_SSIM,
		})
	}
	return nil
}

// This and following are helper structs for libvmaf JSON result. Pointers are used to
// tell absent fields from zero values.
type ffmpegVMAFResult struct {
	Frames *[]frame `json:"frames"`
}

type frame struct {
	FrameNum *uint   `json:"frameNum"`
	Metrics  *metric `json:"metrics"`
}

func (f *frame) validate() error {
	switch {
	case f.FrameNum == nil:
		return errors.New("missing frameNum")
	case f.Metrics == nil:
		return errors.New("missing metrics")
	case f.Metrics.VMAF == nil:
		return errors.New("missing vmaf metric")
	case f.Metrics.PSNR == nil:
		return errors.New("missing psnr metric")
	case f.Metrics.MS_SSIM == nil:
		return errors.New("missing ms_ssim metric")
	}
	return nil
}

type metric struct {
	VMAF    *float64
	PSNR    *float64
	MS_SSIM *float64
}

// Field names of every metric, canonical name first and then aliases used by
// various libvmaf versions.
var (
	vmafKeys   = []string{"vmaf"}
	psnrKeys   = []string{"psnr", "psnr_y"}
	msSsimKeys = []string{"ms_ssim", "float_ms_ssim"}
)

// UnmarshalJSON implements json.Unmarshaler interface for metric.
//
// A custom unmarshaler is needed to work around lack of stability around libvmaf measured
// VQ metric field names in output.
func (m *metric) UnmarshalJSON(b []byte) error {
	// Keep values raw: libvmaf adds plenty of per-frame features we do not care about.
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var err error
	if m.VMAF, err = pick(raw, vmafKeys); err != nil {
		return err
	}
	if m.PSNR, err = pick(raw, psnrKeys); err != nil {
		return err
	}
	if m.MS_SSIM, err = pick(raw, msSsimKeys); err != nil {
		return err
	}
	return nil
}

// pick decodes the first of keys present in raw. Returns nil if none is present.
func pick(raw map[string]json.RawMessage, keys []string) (*float64, error) {
	for _, k := range keys {
		r, ok := raw[k]
		if !ok {
			continue
		}
		var v *float64
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("metric %s: %w", k, err)
		}
		return v, nil
	}
	return nil, nil
}
