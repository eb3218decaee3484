package version

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "v1.14.0", want: "1.14.0"},
		{in: "1.2.3", want: "1.2.3"},
		{in: " v0.0.1 ", want: "0.0.1"},
		{in: "1.2", wantErr: true},
		{in: "v1.2.3-rc1", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Normalize(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsDev(t *testing.T) {
	t.Parallel()
	if !IsDev("dev") || !IsDev("") || !IsDev("  ") {
		t.Fatalf("expected dev builds to be detected")
	}
	if IsDev("v1.0.0") {
		t.Fatalf("release tag misdetected as dev")
	}
}
