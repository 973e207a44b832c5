// Package config resolves the controller configuration from flags, the
// environment and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/junsooki/AirDroid/internal/filepush"
	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
	"github.com/junsooki/AirDroid/internal/joystick"
	"github.com/junsooki/AirDroid/internal/processor"
	"github.com/junsooki/AirDroid/internal/shortcut"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "AIRDROID"

// Env holds the defaults read from the environment. Flags override them.
type Env struct {
	Signaling     string   `envconfig:"SIGNALING" default:"ws://localhost:8080"`
	ID            string   `envconfig:"ID"`
	Device        string   `envconfig:"DEVICE"`
	WS            string   `envconfig:"WS"`
	ICE           []string `envconfig:"ICE"`
	ShortcutMod   string   `envconfig:"SHORTCUT_MOD" default:"lalt,lsuper"`
	Keymap        string   `envconfig:"KEYMAP"`
	KeyInjectMode string   `envconfig:"KEY_INJECT_MODE" default:"mixed"`
	LogLevel      string   `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadEnv loads .env if present and processes the AIRDROID_* variables.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, err
	}
	return env, nil
}

// ControllerConfig holds configuration for the controller binary.
type ControllerConfig struct {
	SignalingURL string
	ControllerID string
	DeviceID     string
	// WebSocketURL, when set, replaces signaling and WebRTC with a direct
	// WebSocket to the device agent.
	WebSocketURL string
	ICEURLs      []string

	ShortcutMods      []shortcut.Mod
	Keymap            *joystick.Keymap
	KeyInjectMode     processor.InjectMode
	ForwardKeyRepeat  bool
	ForwardAllClicks  bool
	LegacyPaste       bool
	ClipboardAutosync bool
	PasteAck          bool
	Control           bool
	FrameSize         geom.Size
	CaptureKey        input.Keycode

	FilePush filepush.Config
	LogLevel zerolog.Level
}

// ParseControllerFlags parses the command line over the environment
// defaults.
func ParseControllerFlags() (*ControllerConfig, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return Parse(flag.CommandLine, os.Args[1:], env)
}

// Parse registers the controller flags on fs, parses args and validates
// the result.
func Parse(fs *flag.FlagSet, args []string, env Env) (*ControllerConfig, error) {
	cfg := &ControllerConfig{}
	var (
		ice, shortcutMod, keymapPath, injectMode string
		frameSize, captureKey, logLevel          string
		noClipboardAutosync, noControl           bool
	)
	fs.StringVar(&cfg.SignalingURL, "signaling", env.Signaling, "Signaling server WebSocket URL")
	fs.StringVar(&cfg.ControllerID, "id", env.ID, "Controller ID (auto-generated if empty)")
	fs.StringVar(&cfg.DeviceID, "device", env.Device, "Device ID to connect to (required unless -ws)")
	fs.StringVar(&cfg.WebSocketURL, "ws", env.WS, "Direct WebSocket control endpoint, bypasses WebRTC")
	fs.StringVar(&ice, "ice", strings.Join(env.ICE, ","), "Comma separated ICE server URLs")
	fs.StringVar(&shortcutMod, "shortcut-mod", env.ShortcutMod, "Shortcut modifiers, e.g. lctrl+lalt,lsuper")
	fs.StringVar(&keymapPath, "keymap", env.Keymap, "Joystick keymap YAML (built-in if empty)")
	fs.StringVar(&injectMode, "key-inject-mode", env.KeyInjectMode, "Key injection: mixed, text or raw")
	fs.BoolVar(&cfg.ForwardKeyRepeat, "forward-key-repeat", true, "Forward auto-repeated keys")
	fs.BoolVar(&cfg.ForwardAllClicks, "forward-all-clicks", false, "Forward right and middle clicks to the device")
	fs.BoolVar(&cfg.LegacyPaste, "legacy-paste", false, "Inject the clipboard as text instead of syncing it")
	fs.BoolVar(&noClipboardAutosync, "no-clipboard-autosync", false, "Do not sync the clipboard on Ctrl+V")
	fs.BoolVar(&cfg.PasteAck, "paste-ack", false, "Wait for the device clipboard ack before injecting Ctrl+V")
	fs.BoolVar(&noControl, "no-control", false, "Read-only session")
	fs.StringVar(&frameSize, "frame-size", "1080x2400", "Device frame size until the device reports one")
	fs.StringVar(&captureKey, "capture-key", "f12", "Key toggling mouse capture mode")
	fs.StringVar(&cfg.FilePush.ADB, "adb", "adb", "adb executable")
	fs.StringVar(&cfg.FilePush.Serial, "serial", "", "adb device serial")
	fs.StringVar(&cfg.FilePush.PushTarget, "push-target", filepush.DefaultPushTarget, "Device directory for pushed files")
	fs.StringVar(&logLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.ClipboardAutosync = !noClipboardAutosync
	cfg.Control = !noControl

	if cfg.DeviceID == "" && cfg.WebSocketURL == "" {
		return nil, errors.New("-device is required unless -ws is set")
	}
	if cfg.ControllerID == "" {
		cfg.ControllerID = "controller-" + uuid.NewString()
	}
	cfg.ICEURLs = splitList(ice)

	var err error
	if cfg.ShortcutMods, err = shortcut.Parse(shortcutMod); err != nil {
		return nil, fmt.Errorf("-shortcut-mod: %w", err)
	}
	if cfg.Keymap, err = joystick.LoadKeymap(keymapPath); err != nil {
		return nil, fmt.Errorf("-keymap: %w", err)
	}
	if cfg.KeyInjectMode, err = processor.ParseInjectMode(injectMode); err != nil {
		return nil, fmt.Errorf("-key-inject-mode: %w", err)
	}
	if cfg.FrameSize, err = ParseSize(frameSize); err != nil {
		return nil, fmt.Errorf("-frame-size: %w", err)
	}
	if cfg.CaptureKey, err = input.ParseKeycode(captureKey); err != nil {
		return nil, fmt.Errorf("-capture-key: %w", err)
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("-log-level: %w", err)
	}
	return cfg, nil
}

// ParseSize parses "WIDTHxHEIGHT".
func ParseSize(s string) (geom.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return geom.Size{}, fmt.Errorf("invalid size %q", s)
	}
	width, err := strconv.ParseUint(w, 10, 16)
	if err != nil {
		return geom.Size{}, fmt.Errorf("invalid width %q: %w", w, err)
	}
	height, err := strconv.ParseUint(h, 10, 16)
	if err != nil {
		return geom.Size{}, fmt.Errorf("invalid height %q: %w", h, err)
	}
	if width == 0 || height == 0 {
		return geom.Size{}, fmt.Errorf("empty size %q", s)
	}
	return geom.Size{Width: uint16(width), Height: uint16(height)}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
