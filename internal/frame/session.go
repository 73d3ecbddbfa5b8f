// Package frame seeks into video sources and decodes single frames,
// corrected for display aspect ratio.
package frame

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/kinograb/kinograb/internal/timecode"
)

// Grab is one decoded frame: the pixel buffer, its final dimensions,
// and the offset that produced it. A DAR rescale changes dimensions
// but never the offset.
type Grab struct {
	Image  image.Image
	Width  int
	Height int
	Offset timecode.Offset
}

// Extractor decodes frames through ffmpeg/ffprobe subprocesses.
type Extractor struct {
	ffmpeg  string
	ffprobe string
	logger  *slog.Logger
}

// NewExtractor builds an Extractor. Empty binary paths fall back to
// the tools on PATH.
func NewExtractor(ffmpeg, ffprobe string, logger *slog.Logger) *Extractor {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{ffmpeg: ffmpeg, ffprobe: ffprobe, logger: logger}
}

// Session is one media source's extraction state. It caches the probe
// result for its lifetime and is released by Close. Sessions are never
// shared between extractions of different items.
type Session struct {
	x      *Extractor
	path   string
	info   *ProbeInfo
	closed bool
}

// Open starts an extraction session. Local paths that cannot be
// stat'ed fail with ErrIO; remote locators skip the check and let the
// decoder report.
func (x *Extractor) Open(location string) (*Session, error) {
	if !isRemote(location) {
		if _, err := os.Stat(location); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrIO, location, err)
		}
	}
	return &Session{x: x, path: location}, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Probe returns the session's cached source metadata, probing on first
// use.
func (s *Session) Probe(ctx context.Context) (*ProbeInfo, error) {
	if s.closed {
		return nil, fmt.Errorf("session closed for %s", s.path)
	}
	if s.info == nil {
		info, err := s.x.probe(ctx, s.path)
		if err != nil {
			return nil, err
		}
		s.x.logger.Debug("probed source",
			"path", s.path, "fps", info.FPS, "dar", info.DAR)
		s.info = info
	}
	return s.info, nil
}

// Extract seeks to the offset and decodes exactly one frame. The target
// frame index is round(fps*seconds) + round(fps*millis/1000); a decode
// that yields no data fails with ErrTimestampNotFound. Output is
// deterministic for a fixed (path, offset) over unchanged bytes.
func (s *Session) Extract(ctx context.Context, offset timecode.Offset) (*Grab, error) {
	info, err := s.Probe(ctx)
	if err != nil {
		return nil, err
	}

	frameIndex := offset.FrameIndex(info.FPS)
	seek := float64(frameIndex) / info.FPS
	s.x.logger.Debug("extracting frame",
		"path", s.path, "offset", offset.String(), "frame", frameIndex)

	data, err := s.x.decodeOne(ctx, s.path, seek)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrTimestampNotFound, offset, s.path)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode frame at %s: %v", ErrTimestampNotFound, offset, err)
	}

	fixed := fixDAR(img, info.DAR)
	bounds := fixed.Bounds()
	return &Grab{
		Image:  fixed,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Offset: offset,
	}, nil
}

// Close releases the session. Further calls fail; the cached probe is
// dropped so nothing leaks across requests.
func (s *Session) Close() error {
	s.info = nil
	s.closed = true
	return nil
}

// decodeOne pipes a single PNG-encoded frame out of ffmpeg. An empty
// pipe means the seek landed outside the playable range.
func (x *Extractor) decodeOne(ctx context.Context, path string, seek float64) ([]byte, error) {
	cmd := exec.CommandContext(ctx, x.ffmpeg,
		"-v", "error",
		"-ss", fmt.Sprintf("%.6f", seek),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-c:v", "png",
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: ffmpeg seek %.3fs in %s: %v: %s",
			ErrTimestampNotFound, seek, path, err, stderr.String())
	}
	return stdout.Bytes(), nil
}
