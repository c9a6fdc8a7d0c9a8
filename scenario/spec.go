package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/grove"
)

// File is a scenario document: a node forest and the animations to start on
// it.
type File struct {
	Nodes      []NodeSpec      `yaml:"nodes"`
	Animations []AnimationSpec `yaml:"animations"`
}

// Vec is a point or size in a scenario file.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Tint is a node color with components in [0, 1]. A defaults to 1.
type Tint struct {
	R float64  `yaml:"r"`
	G float64  `yaml:"g"`
	B float64  `yaml:"b"`
	A *float64 `yaml:"a"`
}

// Color converts t to a grove color.
func (t Tint) Color() grove.Color {
	a := 1.0
	if t.A != nil {
		a = *t.A
	}
	return grove.Color{R: t.R, G: t.G, B: t.B, A: a}
}

// NodeSpec describes one node. A node with an Image is a sprite; without one
// it is a container.
type NodeSpec struct {
	Name     string     `yaml:"name"`
	Image    string     `yaml:"image"`
	Position Vec        `yaml:"position"`
	Scale    *Vec       `yaml:"scale"`
	Rotation float64    `yaml:"rotation"`
	Anchor   Vec        `yaml:"anchor"`
	Opacity  *float64   `yaml:"opacity"`
	Tint     *Tint      `yaml:"tint"`
	Hidden   bool       `yaml:"hidden"`
	Children []NodeSpec `yaml:"children"`
}

// AnimationSpec starts Action on the node called Node. Name labels the run
// in logs and errors.
type AnimationSpec struct {
	Name   string     `yaml:"name"`
	Node   string     `yaml:"node"`
	Paused bool       `yaml:"paused"`
	Action ActionSpec `yaml:"action"`
}

// ActionSpec is the data form of an action tree. Type selects the variant:
//
//	move-by, move-to, scale-to, scale-by   x, y, duration
//	rotate-to, rotate-by                   degrees, duration
//	fade-in, fade-out, wait                duration
//	fade-to                                opacity, duration
//	blink                                  duration, times
//	show, hide, wait-forever
//	sequence, spawn                        actions
//	repeat                                 actions (one), times or forever
//	while                                  actions, condition or times
//	ease                                   actions (one), ease
//
// Any other variant with an Ease set is wrapped in that ease. A while
// condition may instead live in a Tengo file named by ConditionFile, relative
// to the scenario file; Load reads it.
type ActionSpec struct {
	Type          string       `yaml:"type"`
	X             float64      `yaml:"x"`
	Y             float64      `yaml:"y"`
	Degrees       float64      `yaml:"degrees"`
	Opacity       float64      `yaml:"opacity"`
	Duration      float64      `yaml:"duration"`
	Times         int          `yaml:"times"`
	Forever       bool         `yaml:"forever"`
	Ease          string       `yaml:"ease"`
	Condition     string       `yaml:"condition"`
	ConditionFile string       `yaml:"condition_file"`
	Actions       []ActionSpec `yaml:"actions"`
}

// Parse decodes a scenario document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the scenario file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range f.Animations {
		if err := resolveConditions(&f.Animations[i].Action, dir); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// resolveConditions reads every ConditionFile under s into Condition.
func resolveConditions(s *ActionSpec, dir string) error {
	if s.ConditionFile != "" {
		if s.Condition != "" {
			return fmt.Errorf("%w: both condition and condition_file set", ErrSpec)
		}
		src, err := os.ReadFile(filepath.Join(dir, s.ConditionFile))
		if err != nil {
			return fmt.Errorf("scenario: load condition: %w", err)
		}
		s.Condition = strings.TrimSpace(string(src))
		s.ConditionFile = ""
	}
	for i := range s.Actions {
		if err := resolveConditions(&s.Actions[i], dir); err != nil {
			return err
		}
	}
	return nil
}

// Images lists the distinct image paths referenced by the file's nodes, in
// document order.
func (f *File) Images() []string {
	var paths []string
	seen := make(map[string]bool)
	var walk func(ns []NodeSpec)
	walk = func(ns []NodeSpec) {
		for _, n := range ns {
			if n.Image != "" && !seen[n.Image] {
				seen[n.Image] = true
				paths = append(paths, n.Image)
			}
			walk(n.Children)
		}
	}
	walk(f.Nodes)
	return paths
}
