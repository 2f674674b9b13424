package textfold

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Théâtre", "theatre"},
		{"MUSIQUE", "musique"},
		{"Cinéma ", "cinema"},
		{"déjà-vu", "deja-vu"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Théâtre", "theatre") {
		t.Error("accented forms should match")
	}
	if !Equal("SALON", "Salon") {
		t.Error("case should not matter")
	}
	if Equal("Musique", "Danse") {
		t.Error("distinct words matched")
	}
}
