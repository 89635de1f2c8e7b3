package game

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var levelFS embed.FS

const defaultRelight = 3.0

// Point is a level-space position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Box is a level-space rectangle given by its top-left corner and size.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// FlameSpec places a flame standing on (X, Y). Relight is the number of
// seconds the flame stays out after burning the player.
type FlameSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Relight float64 `yaml:"relight"`
}

// Level is the layout of one stage. Cakes are placed by center; the spawn
// point and flames by the bottom-center of the sprite.
type Level struct {
	Name      string      `yaml:"name"`
	Width     float64     `yaml:"width"`
	Height    float64     `yaml:"height"`
	Lives     int         `yaml:"lives"`
	Spawn     Point       `yaml:"spawn"`
	Platforms []Box       `yaml:"platforms"`
	Cakes     []Point     `yaml:"cakes"`
	Flames    []FlameSpec `yaml:"flames"`
	Spikes    []Box       `yaml:"spikes"`
	Goal      Box         `yaml:"goal"`
}

// LoadLevel parses and validates a YAML level.
func LoadLevel(data []byte) (*Level, error) {
	var lv Level
	if err := yaml.Unmarshal(data, &lv); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if err := lv.validate(); err != nil {
		return nil, fmt.Errorf("parse level %q: %w", lv.Name, err)
	}
	return &lv, nil
}

// LoadLevelFile loads one of the embedded levels by name.
func LoadLevelFile(name string) (*Level, error) {
	data, err := levelFS.ReadFile(path.Join("levels", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", name, err)
	}
	return LoadLevel(data)
}

// LevelNames lists the embedded levels in name order.
func LevelNames() []string {
	entries, _ := levelFS.ReadDir("levels")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

func (lv *Level) validate() error {
	if lv.Width <= 0 || lv.Height <= 0 {
		return fmt.Errorf("size %vx%v must be positive", lv.Width, lv.Height)
	}
	if len(lv.Platforms) == 0 {
		return fmt.Errorf("no platforms")
	}
	for i, p := range lv.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("platform %d: size %vx%v must be positive", i, p.W, p.H)
		}
	}
	for i, s := range lv.Spikes {
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("spikes %d: size %vx%v must be positive", i, s.W, s.H)
		}
	}
	if lv.Goal.W <= 0 || lv.Goal.H <= 0 {
		return fmt.Errorf("goal: size %vx%v must be positive", lv.Goal.W, lv.Goal.H)
	}
	for i := range lv.Flames {
		if lv.Flames[i].Relight < 0 {
			return fmt.Errorf("flame %d: negative relight", i)
		}
		if lv.Flames[i].Relight == 0 {
			lv.Flames[i].Relight = defaultRelight
		}
	}
	if lv.Lives <= 0 {
		lv.Lives = 3
	}
	return nil
}
