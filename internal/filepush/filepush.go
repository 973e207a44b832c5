// Package filepush installs dropped APKs and copies other dropped files to
// the device with adb.
package filepush

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// Action is what to do with a dropped file.
type Action uint8

const (
	ActionInstallAPK Action = iota
	ActionPushFile
)

func (a Action) String() string {
	if a == ActionInstallAPK {
		return "install"
	}
	return "push"
}

// DefaultPushTarget is the device directory receiving pushed files.
const DefaultPushTarget = "/sdcard/Download/"

const queueSize = 16

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Config configures a Pusher.
type Config struct {
	ADB        string
	Serial     string
	PushTarget string
	Runner     Runner
}

type request struct {
	action Action
	path   string
}

// Pusher runs file transfers one at a time in the background.
type Pusher struct {
	cfg   Config
	queue chan request

	mu      sync.RWMutex
	stopped bool
}

// New creates a Pusher. Empty fields take their defaults.
func New(cfg Config) *Pusher {
	if cfg.ADB == "" {
		cfg.ADB = "adb"
	}
	if cfg.PushTarget == "" {
		cfg.PushTarget = DefaultPushTarget
	}
	if cfg.Runner == nil {
		cfg.Runner = execRunner
	}
	return &Pusher{cfg: cfg, queue: make(chan request, queueSize)}
}

// Request queues a transfer and reports whether it was accepted.
func (p *Pusher) Request(action Action, path string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.queue <- request{action: action, path: path}:
		return true
	default:
		log.Warn().Str("file", path).Msg("file push queue full")
		return false
	}
}

// Run processes requests until ctx is cancelled, then waits for the
// transfer in progress.
func (p *Pusher) Run(ctx context.Context) {
	workers := pool.New().WithMaxGoroutines(1)
	defer func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()
		workers.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-p.queue:
			workers.Go(func() {
				if err := p.process(ctx, req); err != nil {
					log.Error().Err(err).Str("file", req.path).Msgf("failed to %s file", req.action)
				}
			})
		}
	}
}

func (p *Pusher) args(cmd ...string) []string {
	if p.cfg.Serial == "" {
		return cmd
	}
	return append([]string{"-s", p.cfg.Serial}, cmd...)
}

func (p *Pusher) process(ctx context.Context, req request) error {
	size := "unknown size"
	if fi, err := os.Stat(req.path); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}

	var args []string
	switch req.action {
	case ActionInstallAPK:
		log.Info().Str("file", req.path).Str("size", size).Msg("installing")
		args = p.args("install", "-r", req.path)
	default:
		log.Info().Str("file", req.path).Str("size", size).Str("target", p.cfg.PushTarget).Msg("pushing")
		args = p.args("push", req.path, p.cfg.PushTarget)
	}

	out, err := p.cfg.Runner(ctx, p.cfg.ADB, args...)
	if err != nil {
		return fmt.Errorf("adb %s: %w: %s", req.action, err, strings.TrimSpace(string(out)))
	}
	log.Info().Str("file", req.path).Msgf("%s succeeded", req.action)
	return nil
}
