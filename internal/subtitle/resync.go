package subtitle

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Resyncer realigns a subtitle track against its media file. The core
// only ever calls the function value; process invocation stays behind
// this seam.
type Resyncer func(ctx context.Context, mediaPath, subtitlePath string) error

// FFSubSync returns a Resyncer backed by the ffsubsync tool. The wall
// clock budget bounds the subprocess regardless of the caller's context.
func FFSubSync(bin string, budget time.Duration) Resyncer {
	if bin == "" {
		bin = "ffs"
	}
	return func(ctx context.Context, mediaPath, subtitlePath string) error {
		ctx, cancel := context.WithTimeout(ctx, budget)
		defer cancel()

		cmd := exec.CommandContext(ctx, bin,
			mediaPath,
			"-i", subtitlePath,
			"-o", subtitlePath,
			"--max-offset-seconds", "180",
			"--vad", "webrtc",
		)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("resync %s: %w: %s", subtitlePath, err, stderr.String())
		}
		return nil
	}
}
