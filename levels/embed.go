package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a top-down stealth level in world units, y pointing down.
type Level struct {
	Name        string             `json:"name"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Obstacles   []Rect             `json:"obstacles,omitempty"`
	HidingSpots []Rect             `json:"hiding_spots,omitempty"`
	Exit        *Rect              `json:"exit,omitempty"`
	Paths       map[string][]Point `json:"paths,omitempty"`
	Guards      []Guard            `json:"guards,omitempty"`
	Intruder    Spawn              `json:"intruder"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Vec() cp.Vector { return cp.Vector{X: p.X, Y: p.Y} }

// Rect is an axis-aligned box with its top-left corner at X, Y. Category
// is the obstacle category bit set; zero means walls.
type Rect struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Category uint    `json:"category,omitempty"`
}

func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}

// Guard places one guard. Path names an entry in Level.Paths and wins
// over inline Waypoints. Overrides use the guard prefab's YAML keys.
type Guard struct {
	Name      string         `json:"name"`
	Prefab    string         `json:"prefab,omitempty"`
	Position  Point          `json:"position"`
	Path      string         `json:"path,omitempty"`
	Waypoints []Point        `json:"waypoints,omitempty"`
	Overrides map[string]any `json:"overrides,omitempty"`
}

type Spawn struct {
	Position Point  `json:"position"`
	Prefab   string `json:"prefab,omitempty"`
}

// Load reads a level by name, preferring levels/<name>.json on disk over
// the embedded copy.
func Load(name string) (*Level, error) {
	file := levelFile(name)
	data, err := os.ReadFile(filepath.Join("levels", file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", file, err)
		}
	}
	return Parse(file, data)
}

func Parse(file string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", file, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(file), ".json")
	}
	for i := range lvl.Guards {
		if lvl.Guards[i].Name == "" {
			lvl.Guards[i].Name = fmt.Sprintf("guard%d", i+1)
		}
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", file, err)
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (l *Level) Validate() error {
	var errs []error
	if l.Width <= 0 || l.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %vx%v", l.Width, l.Height))
	}
	for i, r := range l.Obstacles {
		if r.W <= 0 || r.H <= 0 {
			errs = append(errs, fmt.Errorf("obstacle %d has empty size", i))
		}
	}
	for i, r := range l.HidingSpots {
		if r.W <= 0 || r.H <= 0 {
			errs = append(errs, fmt.Errorf("hiding spot %d has empty size", i))
		}
	}
	seen := make(map[string]bool, len(l.Guards))
	for _, g := range l.Guards {
		if seen[g.Name] {
			errs = append(errs, fmt.Errorf("duplicate guard %q", g.Name))
		}
		seen[g.Name] = true
		if g.Path != "" {
			if _, ok := l.Paths[g.Path]; !ok {
				errs = append(errs, fmt.Errorf("guard %q uses unknown path %q", g.Name, g.Path))
			}
		}
	}
	return errors.Join(errs...)
}

// Waypoints resolves a guard's route.
func (l *Level) Waypoints(g Guard) []cp.Vector {
	points := g.Waypoints
	if g.Path != "" {
		points = l.Paths[g.Path]
	}
	out := make([]cp.Vector, 0, len(points))
	for _, p := range points {
		out = append(out, p.Vec())
	}
	return out
}

func levelFile(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}
