package frame

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	mediainfo "github.com/lbryio/go_mediainfo"
)

// ProbeInfo is the per-source metadata one extraction session caches:
// frame rate, intended display aspect ratio, stored dimensions, and
// container duration in seconds.
type ProbeInfo struct {
	FPS      float64
	DAR      float64
	Width    int
	Height   int
	Duration float64
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType          string `json:"codec_type"`
		RFrameRate         string `json:"r_frame_rate"`
		Width              int    `json:"width"`
		Height             int    `json:"height"`
		DisplayAspectRatio string `json:"display_aspect_ratio"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// probe runs ffprobe and parses the first video stream. When ffprobe
// reports no display aspect ratio, the container metadata is consulted
// through mediainfo, which is slower but fills the gap for older muxes.
func (x *Extractor) probe(ctx context.Context, path string) (*ProbeInfo, error) {
	cmd := exec.CommandContext(ctx, x.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: ffprobe %s: %v: %s", ErrIO, path, err, stderr.String())
	}

	info, err := parseProbeOutput(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}

	if info.DAR == 0 {
		if dar, err := mediainfoDAR(path); err == nil {
			info.DAR = dar
		} else if info.Height > 0 {
			info.DAR = float64(info.Width) / float64(info.Height)
		}
	}
	return info, nil
}

func parseProbeOutput(data []byte) (*ProbeInfo, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	for _, stream := range out.Streams {
		if stream.CodecType != "video" {
			continue
		}

		fps, err := parseRational(stream.RFrameRate)
		if err != nil || fps <= 0 {
			return nil, fmt.Errorf("bad frame rate %q", stream.RFrameRate)
		}

		info := &ProbeInfo{
			FPS:    fps,
			Width:  stream.Width,
			Height: stream.Height,
		}
		if stream.DisplayAspectRatio != "" {
			if dar, err := parseAspect(stream.DisplayAspectRatio); err == nil {
				info.DAR = dar
			}
		}
		if out.Format.Duration != "" {
			if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
				info.Duration = d
			}
		}
		return info, nil
	}
	return nil, fmt.Errorf("no video stream")
}

// parseRational reads ffprobe fractions like "24000/1001" or "25/1".
func parseRational(text string) (float64, error) {
	num, den, ok := strings.Cut(text, "/")
	if !ok {
		return strconv.ParseFloat(text, 64)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator in %q", text)
	}
	return n / d, nil
}

// parseAspect reads "16:9"-style ratio strings.
func parseAspect(text string) (float64, error) {
	w, h, ok := strings.Cut(text, ":")
	if !ok {
		return 0, fmt.Errorf("bad aspect ratio %q", text)
	}
	wf, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, err
	}
	hf, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return 0, err
	}
	if hf == 0 || wf <= 0 {
		return 0, fmt.Errorf("bad aspect ratio %q", text)
	}
	return wf / hf, nil
}

// mediainfoDAR derives the display ratio from container dimensions.
func mediainfoDAR(path string) (float64, error) {
	info, err := mediainfo.GetMediaInfo(path)
	if err != nil {
		return 0, fmt.Errorf("mediainfo %s: %w", path, err)
	}
	if info.Video.Height == 0 {
		return 0, fmt.Errorf("mediainfo %s: no video track", path)
	}
	return float64(info.Video.Width) / float64(info.Video.Height), nil
}
