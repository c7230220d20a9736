package levels

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestLoadEmbeddedLevels(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) < 2 {
		t.Fatalf("expected embedded levels, got %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if lvl.Name != name {
				t.Fatalf("name = %q, want %q", lvl.Name, name)
			}
			if lvl.Exit == nil || len(lvl.Guards) == 0 {
				t.Fatalf("level %s needs an exit and guards", name)
			}
		})
	}
}

func TestLoadAcceptsExtension(t *testing.T) {
	if _, err := Load("corridor.json"); err != nil {
		t.Fatalf("load with extension: %v", err)
	}
	if _, err := Load("missing"); err == nil || !strings.Contains(err.Error(), "missing.json") {
		t.Fatalf("expected error naming missing.json, got %v", err)
	}
}

func TestLevelWaypoints(t *testing.T) {
	lvl, err := Load("warehouse")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := []struct {
		guard string
		first cp.Vector
		count int
	}{
		{"g1", cp.Vector{X: 3, Y: 2}, 4},
		{"g2", cp.Vector{X: 19, Y: 3}, 2},
		{"g3", cp.Vector{X: 10, Y: 9}, 2},
	}
	for _, c := range cases {
		t.Run(c.guard, func(t *testing.T) {
			var g Guard
			for _, candidate := range lvl.Guards {
				if candidate.Name == c.guard {
					g = candidate
				}
			}
			wps := lvl.Waypoints(g)
			if len(wps) != c.count || wps[0] != c.first {
				t.Fatalf("waypoints = %v, want %d starting at %v", wps, c.count, c.first)
			}
		})
	}
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name string
		json string
		msg  string
	}{
		{"no_size", `{"width": 0, "height": 4}`, "size"},
		{"unknown_path", `{"width": 4, "height": 4, "guards": [{"name": "a", "path": "loop"}]}`, "unknown path"},
		{"duplicate_guard", `{"width": 4, "height": 4, "guards": [{"name": "a"}, {"name": "a"}]}`, "duplicate guard"},
		{"flat_obstacle", `{"width": 4, "height": 4, "obstacles": [{"x": 1, "y": 1, "w": 0, "h": 1}]}`, "obstacle 0"},
		{"bad_json", `{"width": `, "unmarshal"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse("test.json", []byte(c.json))
			if err == nil || !strings.Contains(err.Error(), c.msg) {
				t.Fatalf("Parse error = %v, want mention of %q", err, c.msg)
			}
		})
	}
}

func TestParseNamesGuards(t *testing.T) {
	lvl, err := Parse("tiny.json", []byte(`{"width": 4, "height": 4, "guards": [{}, {}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if lvl.Name != "tiny" || lvl.Guards[0].Name != "guard1" || lvl.Guards[1].Name != "guard2" {
		t.Fatalf("unexpected names: %q %+v", lvl.Name, lvl.Guards)
	}
}

func TestRectBB(t *testing.T) {
	bb := Rect{X: 1, Y: 2, W: 3, H: 4}.BB()
	if bb != (cp.BB{L: 1, B: 2, R: 4, T: 6}) {
		t.Fatalf("BB = %+v", bb)
	}
}
