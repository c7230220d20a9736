package component

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestVisionConeClamps(t *testing.T) {
	c := NewVisionCone(5, 70, 1)
	if c.Radius() != 5 || c.Angle() != 70 {
		t.Fatalf("unexpected initial cone %v/%v", c.Radius(), c.Angle())
	}

	c.SetRadius(-3)
	if c.Radius() != MinViewRadius {
		t.Fatalf("radius clamp = %v, want %v", c.Radius(), MinViewRadius)
	}
	c.SetAngle(400)
	if c.Angle() != MaxViewAngle {
		t.Fatalf("angle clamp = %v, want %v", c.Angle(), MaxViewAngle)
	}
	c.SetAngle(0)
	if c.Angle() != MinViewAngle {
		t.Fatalf("angle clamp = %v, want %v", c.Angle(), MinViewAngle)
	}
	if c.Inflated() {
		t.Fatalf("cone below base should not report inflated")
	}

	c.SetRadius(9)
	if !c.Inflated() {
		t.Fatalf("expected inflated cone")
	}
	c.Reset()
	if c.Radius() != 5 || c.Angle() != 70 {
		t.Fatalf("reset cone %v/%v, want 5/70", c.Radius(), c.Angle())
	}
}

func TestQuantizeDir(t *testing.T) {
	cases := []struct {
		dir  cp.Vector
		want CardinalDir
	}{
		{cp.Vector{X: 1, Y: 0.2}, DirRight},
		{cp.Vector{X: -1, Y: 0.2}, DirLeft},
		{cp.Vector{X: 0.1, Y: 1}, DirFront},
		{cp.Vector{X: 0.1, Y: -1}, DirBack},
		{cp.Vector{X: 1, Y: 1}, DirFront},
	}
	for _, c := range cases {
		if got := QuantizeDir(c.dir); got != c.want {
			t.Fatalf("QuantizeDir(%v) = %v, want %v", c.dir, got, c.want)
		}
	}
}

func TestFacingOverrideOption(t *testing.T) {
	if NoFacing().IsSet() {
		t.Fatalf("NoFacing should be absent")
	}
	o := SomeFacing(cp.Vector{X: 0, Y: 3})
	d, ok := o.Get()
	if !ok || d != (cp.Vector{X: 0, Y: 1}) {
		t.Fatalf("SomeFacing normalized = %v ok=%v", d, ok)
	}
}
