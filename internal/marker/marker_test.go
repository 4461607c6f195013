package marker

import "testing"

func TestDirective(t *testing.T) {
	if got := InjectLogin.Directive(); got != "//bbgo:injectlogin" {
		t.Errorf("Directive() = %q, want %q", got, "//bbgo:injectlogin")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	kinds := r.Kinds()
	if len(kinds) != 1 || kinds[0] != InjectLogin {
		t.Fatalf("Kinds() = %v, want [%s]", kinds, InjectLogin)
	}

	if !r.Supported(InjectLogin) {
		t.Error("Supported(InjectLogin) = false, want true")
	}

	if r.Supported(Kind("bbgo:other")) {
		t.Error("Supported(bbgo:other) = true, want false")
	}

	// Kinds must return a copy.
	kinds[0] = "mutated"
	if Default().Kinds()[0] != InjectLogin {
		t.Error("Kinds() exposed internal slice")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantOk bool
	}{
		{name: "basic", text: "//bbgo:injectlogin", wantOk: true},
		{name: "leading space", text: "// bbgo:injectlogin", wantOk: true},
		{name: "plus marker", text: "// +bbgo:injectlogin", wantOk: true},
		{name: "with reason", text: "//bbgo:injectlogin - login screen", wantOk: true},
		{name: "with tab", text: "//bbgo:injectlogin\tfoo", wantOk: true},
		{name: "longer name", text: "//bbgo:injectloginx", wantOk: false},
		{name: "regular comment", text: "// regular comment", wantOk: false},
		{name: "mentioned later", text: "// see bbgo:injectlogin", wantOk: false},
		{name: "other namespace", text: "//go:generate stringer", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := Default().Match(tt.text)
			if ok != tt.wantOk {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.text, ok, tt.wantOk)
			}

			if ok && kind != InjectLogin {
				t.Errorf("Match(%q) kind = %q, want %q", tt.text, kind, InjectLogin)
			}
		})
	}
}

func TestSupportsGoVersion(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"go1.21", true},
		{"go1.24.0", true},
		{"1.22", true},
		{"go1.25.4", true},
		{"go1.20", false},
		{"go1.18.3", false},
		{"", false},
		{"go", false},
		{"banana", false},
	}

	for _, tt := range tests {
		if got := SupportsGoVersion(tt.version); got != tt.want {
			t.Errorf("SupportsGoVersion(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}
