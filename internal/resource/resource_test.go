package resource

import "testing"

func TestStringAndSingleton(t *testing.T) {
	cases := []struct {
		r    Resource
		want string
	}{
		{Avatars, "avatars"},
		{Icons, "icons"},
	}
	for _, tc := range cases {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
		if !tc.r.Singleton() {
			t.Errorf("%q: expected Singleton() true", tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"avatars", "icons"} {
		r, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", name, err)
		}
		if r.String() != name {
			t.Errorf("Parse(%q).String() = %q", name, r.String())
		}
	}

	if _, err := Parse("videos"); err == nil {
		t.Error("Parse(\"videos\") expected error, got nil")
	}
}
