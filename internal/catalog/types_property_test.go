package catalog

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func genQuestionType() *rapid.Generator[Type] {
	return rapid.SampledFrom(QuestionTypes)
}

func genDifficultyFilter() *rapid.Generator[Difficulty] {
	return rapid.SampledFrom(append([]Difficulty{DifficultyAny}, Difficulties...))
}

// TestType_ParseRoundTrip tests that every concrete type survives parsing in any case
func TestType_ParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		typ := genQuestionType().Draw(t, "type")
		upper := rapid.Bool().Draw(t, "upper")

		in := typ.String()
		if upper {
			in = strings.ToUpper(in)
		}

		got, err := ParseType("  " + in + " ")
		if err != nil {
			t.Fatalf("ParseType(%q) failed: %v", in, err)
		}
		if got != typ {
			t.Fatalf("ParseType(%q) = %q, want %q", in, got, typ)
		}
	})
}

// TestType_InvalidStringsFail tests that arbitrary words are rejected
func TestType_InvalidStringsFail(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-z]{1,12}`).Filter(func(s string) bool {
			switch s {
			case "technical", "behavioral", "hr", "design", "mixed":
				return false
			}
			return true
		}).Draw(t, "word")

		if _, err := ParseType(s); err == nil {
			t.Fatalf("ParseType(%q) should fail", s)
		}
	})
}

// TestByType_FilterSemantics tests that every returned question satisfies the filter
// and that nothing matching the filter is left out
func TestByType_FilterSemantics(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	rapid.Check(t, func(t *rapid.T) {
		typ := rapid.SampledFrom(append([]Type{TypeMixed}, QuestionTypes...)).Draw(t, "type")
		d := genDifficultyFilter().Draw(t, "difficulty")

		got := c.ByType(typ, d)

		matching := 0
		for _, q := range c.All() {
			if (typ == TypeMixed || q.Type == typ) && (d == DifficultyAny || q.Difficulty == d) {
				matching++
			}
		}
		if len(got) != matching {
			t.Fatalf("ByType(%s, %s) returned %d questions, want %d", typ, d, len(got), matching)
		}
		for _, q := range got {
			if typ != TypeMixed && q.Type != typ {
				t.Fatalf("question %s has type %s, want %s", q.ID, q.Type, typ)
			}
			if d != DifficultyAny && q.Difficulty != d {
				t.Fatalf("question %s has difficulty %s, want %s", q.ID, q.Difficulty, d)
			}
		}
	})
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"", DifficultyAny, false},
		{"any", DifficultyAny, false},
		{"Advanced", DifficultyAdvanced, false},
		{"expert", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAnswerFormat(t *testing.T) {
	for _, in := range []string{"star", "technical", "general", "none", ""} {
		if _, err := ParseAnswerFormat(in); err != nil {
			t.Errorf("ParseAnswerFormat(%q) unexpected error: %v", in, err)
		}
	}
	if _, err := ParseAnswerFormat("essay"); err == nil {
		t.Error("ParseAnswerFormat(essay) should fail")
	}
}
