package bodies

import (
	"errors"
	"testing"
)

func TestRegistryShape(t *testing.T) {
	all := All()
	if len(all) != 10 {
		t.Fatalf("expected 10 bodies, got %d", len(all))
	}
	if !all[0].Star || all[0].Name != "Sun" {
		t.Errorf("expected Sun first, got %s", all[0].Name)
	}

	seen := make(map[string]bool)
	for _, b := range all {
		if seen[b.Name] {
			t.Errorf("duplicate body %s", b.Name)
		}
		seen[b.Name] = true
		if b.OrbitSpeed < 0 || b.SpinSpeed < 0 {
			t.Errorf("%s: negative speed", b.Name)
		}
		if b.Radius <= 0 {
			t.Errorf("%s: radius should be positive", b.Name)
		}
	}
}

func TestPlanets(t *testing.T) {
	planets := Planets()
	if len(planets) != 9 {
		t.Fatalf("expected 9 planets, got %d", len(planets))
	}
	if planets[0].Name != "Mercury" || planets[8].Name != "Pluto" {
		t.Errorf("unexpected order: %s .. %s", planets[0].Name, planets[8].Name)
	}
	for i := 1; i < len(planets); i++ {
		if planets[i].Distance <= planets[i-1].Distance {
			t.Errorf("%s should be farther out than %s", planets[i].Name, planets[i-1].Name)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"Venus", "Venus", false},
		{"saturn", "Saturn", false},
		{"PLUTO", "Pluto", false},
		{"Vulcan", "", true},
	}

	for _, tt := range tests {
		b, err := Lookup(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownBody) {
				t.Errorf("%s: expected ErrUnknownBody, got %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if b.Name != tt.want {
			t.Errorf("expected %s, got %s", tt.want, b.Name)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[1].OrbitSpeed = 99
	if All()[1].OrbitSpeed == 99 {
		t.Error("All should not expose the registry slice")
	}
}

func TestRings(t *testing.T) {
	for _, name := range []string{"Saturn", "Uranus"} {
		b, _ := Lookup(name)
		if b.Ring == nil || b.Ring.Outer <= b.Ring.Inner {
			t.Errorf("%s should have a ring", name)
		}
	}
	earth, _ := Lookup("Earth")
	if !earth.Clouds {
		t.Error("Earth should have clouds")
	}
}
