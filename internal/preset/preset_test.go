package preset

import "testing"

func TestLookupOrientation(t *testing.T) {
	tbl := Default()
	tests := []struct {
		name string
		o    Orientation
		w, h int
	}{
		{"16:9", Landscape, 1600, 900},
		{"16:9", Portrait, 900, 1600},
		{"16:9", "", 1600, 900},
		{"a4", Portrait, 2480, 3508},
		{"A4", Landscape, 3508, 2480},
		{"Legal", "", 2550, 4200},
	}
	for _, tt := range tests {
		p, ok := tbl.Lookup(tt.name, tt.o)
		if !ok {
			t.Errorf("Lookup(%q, %q) not found", tt.name, tt.o)
			continue
		}
		if p.Width != tt.w || p.Height != tt.h {
			t.Errorf("Lookup(%q, %q) = %dx%d, want %dx%d", tt.name, tt.o, p.Width, p.Height, tt.w, tt.h)
		}
	}
	if _, ok := tbl.Lookup("9:7", Landscape); ok {
		t.Error("unknown preset found")
	}
}

func TestRatioLabel(t *testing.T) {
	tbl := Default()
	tests := map[string]string{
		"1:1":   "1:1",
		"4:3":   "4:3",
		"21:9":  "7:3",
		"16:10": "8:5",
		"A4":    "620:877",
	}
	for name, want := range tests {
		p, _ := tbl.Lookup(name, "")
		if got := p.RatioLabel(); got != want {
			t.Errorf("%s: RatioLabel() = %q, want %q", name, got, want)
		}
	}
	p, _ := tbl.Lookup("16:9", Portrait)
	if got := p.RatioLabel(); got != "9:16" {
		t.Errorf("portrait 16:9 label = %q", got)
	}
}

func TestListOrder(t *testing.T) {
	tbl := Default()
	if err := tbl.Add("banner", 1500, 500); err != nil {
		t.Fatal(err)
	}
	list := tbl.List(Portrait)
	if len(list) != len(builtin)+1 {
		t.Fatalf("List() len = %d", len(list))
	}
	if list[0].Name != "1:1" || list[6].Name != "A4" || list[len(list)-1].Name != "banner" {
		t.Errorf("unexpected order: %s %s %s", list[0].Name, list[6].Name, list[len(list)-1].Name)
	}
	for _, p := range list {
		if p.Orientation() != Portrait {
			t.Errorf("%s orientation %q", p.Name, p.Orientation())
		}
	}
	if b := list[len(list)-1]; b.Width != 500 || b.Height != 1500 {
		t.Errorf("custom preset not rotated: %dx%d", b.Width, b.Height)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	tbl := Default()
	if err := tbl.Add("", 1, 1); err == nil {
		t.Error("empty name accepted")
	}
	if err := tbl.Add("flat", 100, 0); err == nil {
		t.Error("zero height accepted")
	}
}
