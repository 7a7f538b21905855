package update

import "testing"

func TestCheckDevVersionSkipped(t *testing.T) {
	rel, err := Check("dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel != nil {
		t.Errorf("expected nil release for dev version, got %+v", rel)
	}
}

func TestCheckEmptyVersionSkipped(t *testing.T) {
	rel, err := Check("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel != nil {
		t.Errorf("expected nil release for empty version, got %+v", rel)
	}
}

func TestCheckUnparseableVersionSkipped(t *testing.T) {
	rel, err := Check("0.1.0-dirty-local-build-xyz!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel != nil {
		t.Errorf("expected nil release for unparseable version, got %+v", rel)
	}
}

func TestApplyRefusesDevBuild(t *testing.T) {
	if _, err := Apply("dev"); err == nil {
		t.Fatal("expected error when updating a dev build")
	}
}

func TestParseSemver(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"v1.0.0", false},
		{"1.0.0", false},
		{"0.1.0-3-gabcdef", false},
		{"v0.1.0-rc.1", false},
		{"dev", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseSemver(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseSemver(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
