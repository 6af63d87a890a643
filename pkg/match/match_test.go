package match

import "testing"

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		line    string
		want    bool
	}{
		{"no patterns passes", nil, nil, "usb 1-1: new device", true},
		{"include match", []string{"usb"}, nil, "usb 1-1: new device", true},
		{"include miss", []string{"usb"}, nil, "audit: denied", false},
		{"any include suffices", []string{"usb", "audit"}, nil, "audit: denied", true},
		{"exclude drops", nil, []string{"audit"}, "audit: denied", false},
		{"exclude wins over include", []string{"audit"}, []string{"denied"}, "audit: denied", false},
		{"include pass exclude miss", []string{"usb"}, []string{"audit"}, "usb 1-1: reset", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.include, tt.exclude)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got := f.Match(tt.line); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFilter_NilPassesEverything(t *testing.T) {
	var f *Filter
	if !f.Match("anything") {
		t.Error("nil filter should pass every line")
	}
}

func TestCompile_InvalidPattern(t *testing.T) {
	if _, err := Compile([]string{"[unclosed"}, nil); err == nil {
		t.Error("Expected error for invalid include pattern")
	}
	if _, err := Compile(nil, []string{"[unclosed"}); err == nil {
		t.Error("Expected error for invalid exclude pattern")
	}
}
