package feedback

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/rehearse/internal/errors"
)

// STARGroup is one component of the STAR structure and the substrings that
// signal it.
type STARGroup struct {
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Synonyms []string `yaml:"synonyms" json:"synonyms" validate:"min=1,dive,required"`
}

// Rules holds the keyword tables and thresholds the engine scores against.
// Swapping Rules changes what is matched, never the order or weight of the
// scoring steps.
type Rules struct {
	EvidenceKeywords []string    `yaml:"evidence_keywords" json:"evidence_keywords" validate:"min=1,dive,required"`
	STARGroups       []STARGroup `yaml:"star_groups" json:"star_groups" validate:"min=1,dive"`
	STARThreshold    int         `yaml:"star_threshold" json:"star_threshold" validate:"min=1"`

	BriefWords   int `yaml:"brief_words" json:"brief_words" validate:"gte=0"`
	LengthyWords int `yaml:"lengthy_words" json:"lengthy_words" validate:"gtfield=BriefWords"`

	QuickSeconds int `yaml:"quick_seconds" json:"quick_seconds" validate:"gte=0"`
	SlowSeconds  int `yaml:"slow_seconds" json:"slow_seconds" validate:"gtfield=QuickSeconds"`

	STARReference string `yaml:"star_reference" json:"star_reference"`
}

// DefaultRules returns the built-in rule tables.
func DefaultRules() Rules {
	return Rules{
		EvidenceKeywords: []string{
			"experience", "example", "result", "learned",
			"improved", "achieved", "implemented", "developed",
		},
		STARGroups: []STARGroup{
			{Name: "situation", Synonyms: []string{"situation", "context", "background", "project", "challenge"}},
			{Name: "task", Synonyms: []string{"task", "responsibility", "goal", "objective", "assigned"}},
			{Name: "action", Synonyms: []string{"action", "did", "implemented", "decided", "approached", "used"}},
			{Name: "result", Synonyms: []string{"result", "outcome", "achieved", "improved", "increased", "decreased", "learned"}},
		},
		STARThreshold: 3,
		BriefWords:    20,
		LengthyWords:  300,
		QuickSeconds:  30,
		SlowSeconds:   300,
		STARReference: "https://www.thebalancemoney.com/what-is-the-star-interview-response-technique-2061629",
	}
}

// Validate checks the rule tables for internal consistency.
func (r Rules) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeRulesInvalid, "invalid feedback rules", err)
	}
	if r.STARThreshold > len(r.STARGroups) {
		return errors.New(errors.ErrCodeRulesInvalid,
			fmt.Sprintf("star_threshold %d exceeds the %d configured groups", r.STARThreshold, len(r.STARGroups)))
	}
	return nil
}

// normalized returns a copy with every keyword lowercased.
func (r Rules) normalized() Rules {
	out := r
	out.EvidenceKeywords = lowerAll(r.EvidenceKeywords)
	out.STARGroups = make([]STARGroup, len(r.STARGroups))
	for i, g := range r.STARGroups {
		out.STARGroups[i] = STARGroup{Name: g.Name, Synonyms: lowerAll(g.Synonyms)}
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// LoadRules reads a YAML rules file. Keys absent from the file keep their
// default values.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Rules{}, errors.NewFileNotFoundError(path)
		}
		return Rules{}, errors.NewFileReadError(path, err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, errors.Wrap(errors.ErrCodeRulesInvalid, fmt.Sprintf("decode rules file %s", path), err).
			WithSuggestion("Check the YAML syntax of the rules file")
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}
