package config

import (
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
	"github.com/junsooki/AirDroid/internal/processor"
	"github.com/junsooki/AirDroid/internal/shortcut"
)

func defaultEnv() Env {
	return Env{
		Signaling:     "ws://localhost:8080",
		ShortcutMod:   "lalt,lsuper",
		KeyInjectMode: "mixed",
		LogLevel:      "info",
	}
}

func parse(t *testing.T, env Env, args ...string) (*ControllerConfig, error) {
	t.Helper()
	fs := flag.NewFlagSet("controller", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return Parse(fs, args, env)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(t, defaultEnv(), "-device", "pixel")
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:8080", cfg.SignalingURL)
	assert.Equal(t, "pixel", cfg.DeviceID)
	assert.True(t, strings.HasPrefix(cfg.ControllerID, "controller-"))
	assert.Empty(t, cfg.ICEURLs)
	assert.Equal(t, []shortcut.Mod{shortcut.LAlt, shortcut.LSuper}, cfg.ShortcutMods)
	assert.NotNil(t, cfg.Keymap)
	assert.Equal(t, processor.InjectMixed, cfg.KeyInjectMode)
	assert.True(t, cfg.ForwardKeyRepeat)
	assert.True(t, cfg.ClipboardAutosync)
	assert.True(t, cfg.Control)
	assert.False(t, cfg.PasteAck)
	assert.Equal(t, geom.Size{Width: 1080, Height: 2400}, cfg.FrameSize)
	assert.Equal(t, input.KeyF12, cfg.CaptureKey)
	assert.Equal(t, "adb", cfg.FilePush.ADB)
	assert.Equal(t, "/sdcard/Download/", cfg.FilePush.PushTarget)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestParse_FlagsOverrideEnv(t *testing.T) {
	env := defaultEnv()
	env.Device = "from-env"
	env.ICE = []string{"stun:a"}

	cfg, err := parse(t, env,
		"-device", "from-flag",
		"-id", "me",
		"-ice", "stun:x, turn:y ,",
		"-shortcut-mod", "lctrl+lalt",
		"-key-inject-mode", "RAW",
		"-no-clipboard-autosync",
		"-no-control",
		"-paste-ack",
		"-frame-size", "720X1280",
		"-capture-key", "escape",
		"-log-level", "debug",
	)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.DeviceID)
	assert.Equal(t, "me", cfg.ControllerID)
	assert.Equal(t, []string{"stun:x", "turn:y"}, cfg.ICEURLs)
	assert.Equal(t, []shortcut.Mod{shortcut.LCtrl | shortcut.LAlt}, cfg.ShortcutMods)
	assert.Equal(t, processor.InjectRaw, cfg.KeyInjectMode)
	assert.False(t, cfg.ClipboardAutosync)
	assert.False(t, cfg.Control)
	assert.True(t, cfg.PasteAck)
	assert.Equal(t, geom.Size{Width: 720, Height: 1280}, cfg.FrameSize)
	assert.Equal(t, input.KeyEscape, cfg.CaptureKey)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestParse_EnvICEDefault(t *testing.T) {
	env := defaultEnv()
	env.ICE = []string{"stun:a", "stun:b"}

	cfg, err := parse(t, env, "-ws", "ws://10.0.0.2:27183/control")
	require.NoError(t, err)
	assert.Equal(t, []string{"stun:a", "stun:b"}, cfg.ICEURLs)
	assert.Equal(t, "ws://10.0.0.2:27183/control", cfg.WebSocketURL)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing device", nil, "-device is required"},
		{"bad shortcut", []string{"-device", "d", "-shortcut-mod", "lctrl+meta"}, "-shortcut-mod"},
		{"empty shortcut", []string{"-device", "d", "-shortcut-mod", "lctrl,"}, "-shortcut-mod"},
		{"bad inject mode", []string{"-device", "d", "-key-inject-mode", "fast"}, "-key-inject-mode"},
		{"bad frame size", []string{"-device", "d", "-frame-size", "1080"}, "-frame-size"},
		{"bad capture key", []string{"-device", "d", "-capture-key", "hyper"}, "-capture-key"},
		{"bad log level", []string{"-device", "d", "-log-level", "loud"}, "-log-level"},
		{"missing keymap", []string{"-device", "d", "-keymap", "/nonexistent/keymap.yaml"}, "-keymap"},
		{"unknown flag", []string{"-host", "h"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, defaultEnv(), tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Size
		wantErr bool
	}{
		{in: "1080x2400", want: geom.Size{Width: 1080, Height: 2400}},
		{in: "1x1", want: geom.Size{Width: 1, Height: 1}},
		{in: "0x100", wantErr: true},
		{in: "70000x100", wantErr: true},
		{in: "axb", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("AIRDROID_DEVICE", "emulator-5554")
	t.Setenv("AIRDROID_ICE", "stun:a,stun:b")
	t.Setenv("AIRDROID_LOG_LEVEL", "warn")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "emulator-5554", env.Device)
	assert.Equal(t, []string{"stun:a", "stun:b"}, env.ICE)
	assert.Equal(t, "warn", env.LogLevel)
	assert.Equal(t, "ws://localhost:8080", env.Signaling)
	assert.Equal(t, "lalt,lsuper", env.ShortcutMod)
}
