package joystick

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_keymap.yaml
var defaultKeymap []byte

// Point is a normalized screen position, both coordinates in [0, 1].
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Keymap describes where the virtual joystick, the look pad and the fixed
// action buttons sit on the device screen.
type Keymap struct {
	Wheel   Wheel    `yaml:"wheel"`
	Look    Look     `yaml:"look"`
	Actions []Action `yaml:"actions"`
	Buttons Buttons  `yaml:"buttons"`
}

// Wheel is the directional pad. Offsets are normalized distances from the
// center.
type Wheel struct {
	Center  Point     `yaml:"center"`
	Up      float64   `yaml:"up"`
	Down    float64   `yaml:"down"`
	Left    float64   `yaml:"left"`
	Right   float64   `yaml:"right"`
	Pointer uint64    `yaml:"pointer"`
	Keys    WheelKeys `yaml:"keys"`
}

type WheelKeys struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
}

// Look maps relative mouse motion onto a dragged finger.
type Look struct {
	Sensitivity Point  `yaml:"sensitivity"`
	Reset       Point  `yaml:"reset"`
	Pointer     uint64 `yaml:"pointer"`
}

// Action is a fixed-position touch bound to a key, a mouse button, or both.
type Action struct {
	Name    string  `yaml:"name"`
	Key     string  `yaml:"key,omitempty"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Pointer uint64  `yaml:"pointer"`
}

// Buttons names the actions triggered by mouse buttons.
type Buttons struct {
	Left   string `yaml:"left,omitempty"`
	Right  string `yaml:"right,omitempty"`
	Middle string `yaml:"middle,omitempty"`
}

// DefaultKeymap returns the built-in keymap.
func DefaultKeymap() (*Keymap, error) {
	return ParseKeymap(defaultKeymap)
}

// LoadKeymap reads a YAML keymap from path. An empty path returns the
// built-in keymap.
func LoadKeymap(path string) (*Keymap, error) {
	if path == "" {
		return DefaultKeymap()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap: %w", err)
	}
	km, err := ParseKeymap(data)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	return km, nil
}

// ParseKeymap decodes a YAML keymap. Unknown fields are rejected.
func ParseKeymap(data []byte) (*Keymap, error) {
	var km Keymap
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&km); err != nil {
		return nil, fmt.Errorf("failed to parse keymap: %w", err)
	}
	return &km, nil
}
