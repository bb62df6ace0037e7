package scoring

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "noodle", "noodle", 1},
		{"identical unicode", "カップヌードル", "カップヌードル", 1},
		{"case insensitive", "Noodle", "nOODLE", 1},
		{"both empty", "", "", 1},
		{"one empty", "noodle", "", 0},
		{"disjoint", "abc", "xyz", 0},
		{"half overlap", "ab", "ax", 0.5}, // lcs=1 -> 2*1/4
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"cup noodle", "cup noodles"},
		{"日清食品", "日清"},
		{"peyoung", "peyong"},
		{"", "x"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	inputs := []string{"", "a", "ab", "noodle", "カップヌードル BIG", "日清食品株式会社"}
	for _, a := range inputs {
		for _, b := range inputs {
			got := Similarity(a, b)
			if got < 0 || got > 1 {
				t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", a, b, got)
			}
		}
	}
}

func TestSimilarity_CloseStrings(t *testing.T) {
	// One dropped character out of seven: ratio = 2*6/13.
	got := Similarity("peyoung", "peyong")
	want := 2.0 * 6 / 13
	if got != want {
		t.Errorf("Similarity = %v, want %v", got, want)
	}
	if got < 0.8 {
		t.Errorf("expected a near-miss spelling to clear the default threshold, got %v", got)
	}
}

func TestFuzzyEligible(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"", false},
		{"ab", false},
		{"abc", true},
		{"日清", false},
		{"日清食", true},
	}
	for _, tt := range tests {
		if got := FuzzyEligible(tt.s); got != tt.want {
			t.Errorf("FuzzyEligible(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
