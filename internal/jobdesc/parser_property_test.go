package jobdesc

import (
	"reflect"
	"regexp"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

var experienceShape = regexp.MustCompile(`^\d+\+ years$`)

func genPosting() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.String(),
		rapid.StringMatching(`[A-Z][a-z]{2,10}( [A-Z][a-z]{2,10}){0,3}( at [A-Z][a-z]{2,8})?\n(Requires [0-9]{1,2}\+? years? (of )?experience )?(with )?(Python|Go|Docker|AWS|React|SQL)(, (Python|Go|Docker|AWS|React|SQL)){0,4}\.( (finance|medical|retail|edtech|marketing))?`),
	)
}

// TestParse_Idempotent tests that parsing identical text twice yields identical results
func TestParse_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genPosting().Draw(t, "text")

		first := Parse(text)
		second := Parse(text)

		if !reflect.DeepEqual(first, second) {
			t.Fatalf("Parse is not deterministic:\n%+v\n%+v", first, second)
		}
	})
}

// TestParse_FieldsAlwaysWellFormed tests the shape of every extracted field
func TestParse_FieldsAlwaysWellFormed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genPosting().Draw(t, "text")

		jd := Parse(text)

		if len(jd.Title) > maxTitleLength {
			t.Fatalf("title longer than %d: %q", maxTitleLength, jd.Title)
		}
		if jd.Company == "" {
			t.Fatal("company must never be empty")
		}
		if jd.Experience != DefaultExperience && !experienceShape.MatchString(jd.Experience) {
			t.Fatalf("unexpected experience %q", jd.Experience)
		}
		if jd.Description != text {
			t.Fatal("description must be the original text")
		}

		// Skills are a subsequence of the reference list.
		last := -1
		for _, s := range jd.Skills {
			i := slices.Index(KnownSkills, s)
			if i <= last {
				t.Fatalf("skills %v not in reference order", jd.Skills)
			}
			last = i
		}

		switch jd.Industry {
		case IndustryTechnology, IndustryFinance, IndustryHealthcare, IndustryRetail, IndustryEducation, IndustryMarketing:
		default:
			t.Fatalf("unknown industry %q", jd.Industry)
		}
	})
}
