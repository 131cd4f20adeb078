// Package resources holds the static preparation material shown alongside
// practice sessions.
package resources

import (
	"slices"

	"github.com/felixgeelhaar/rehearse/internal/jobdesc"
)

const (
	STARMethodURL         = "https://www.thebalancemoney.com/what-is-the-star-interview-response-technique-2061629"
	CommonQuestionsURL    = "https://www.thebalancemoney.com/top-job-interview-questions-2061228"
	industryQuestionLimit = 2
)

var salaryNegotiationTips = []string{
	"Research industry standards and company salary ranges before negotiating",
	"Consider the total compensation package, not just base salary",
	"Practice your negotiation conversation beforehand",
	"Be prepared to justify your salary request with specific examples",
	"Know your minimum acceptable offer before starting negotiations",
	"Consider non-salary benefits that might be valuable to you",
	"Time your negotiation appropriately - usually after receiving an offer",
	"Be professional and collaborative, not confrontational",
}

var bodyLanguageTips = []string{
	"Maintain good eye contact - shows confidence and engagement",
	"Sit up straight with shoulders back - projects professionalism",
	"Use open gestures - avoid crossing arms or fidgeting",
	"Mirror the interviewer's energy level appropriately",
	"Smile genuinely when appropriate - shows enthusiasm",
	"Use hand gestures to emphasize points, but don't overdo it",
	"Lean in slightly when listening - shows active engagement",
	"Practice a firm handshake - first impressions matter",
}

var industryQuestions = map[jobdesc.Industry][]string{
	jobdesc.IndustryTechnology: {
		"How do you stay updated with the latest tech trends?",
		"Describe your experience with agile development methodologies.",
		"How do you approach debugging complex technical issues?",
	},
	jobdesc.IndustryFinance: {
		"How do you handle working with sensitive financial data?",
		"Describe your experience with financial regulations and compliance.",
		"How do you approach risk assessment in your work?",
	},
	jobdesc.IndustryHealthcare: {
		"How do you ensure patient privacy and data security?",
		"Describe your experience working in a regulated environment.",
		"How do you handle high-pressure situations?",
	},
	jobdesc.IndustryRetail: {
		"How do you approach customer experience optimization?",
		"Describe your experience with omnichannel retail strategies.",
		"How do you handle seasonal demand fluctuations?",
	},
}

// IndustryQuestions pairs an industry with sample questions asked in it.
type IndustryQuestions struct {
	Industry  jobdesc.Industry `json:"industry" yaml:"industry"`
	Questions []string         `json:"questions" yaml:"questions"`
}

// Bundle is the full set of preparation material.
type Bundle struct {
	STARMethod        string              `json:"star_method" yaml:"star_method"`
	CommonQuestions   string              `json:"interview_questions" yaml:"interview_questions"`
	SalaryNegotiation []string            `json:"salary_negotiation_tips" yaml:"salary_negotiation_tips"`
	BodyLanguage      []string            `json:"body_language_tips" yaml:"body_language_tips"`
	Industries        []IndustryQuestions `json:"industry_questions" yaml:"industry_questions"`
}

// All returns every resource. limit caps each tip list; zero or less means
// no cap.
func All(limit int) Bundle {
	return Bundle{
		STARMethod:        STARMethodURL,
		CommonQuestions:   CommonQuestionsURL,
		SalaryNegotiation: capped(salaryNegotiationTips, limit),
		BodyLanguage:      capped(bodyLanguageTips, limit),
		Industries:        allIndustryQuestions(),
	}
}

// QuestionsFor returns sample questions for industry, or nil when none are
// curated.
func QuestionsFor(industry jobdesc.Industry) []string {
	return slices.Clone(industryQuestions[industry])
}

func allIndustryQuestions() []IndustryQuestions {
	order := []jobdesc.Industry{
		jobdesc.IndustryTechnology,
		jobdesc.IndustryFinance,
		jobdesc.IndustryHealthcare,
		jobdesc.IndustryRetail,
	}
	out := make([]IndustryQuestions, 0, len(order))
	for _, ind := range order {
		out = append(out, IndustryQuestions{
			Industry:  ind,
			Questions: capped(industryQuestions[ind], industryQuestionLimit),
		})
	}
	return out
}

func capped(list []string, limit int) []string {
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return slices.Clone(list)
}
