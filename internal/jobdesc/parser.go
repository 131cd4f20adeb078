// Package jobdesc extracts structured signals from free-text job
// descriptions. Extraction never fails: every field falls back to a fixed
// default when its pattern does not match.
package jobdesc

import (
	"regexp"
	"strings"
)

// Industry classifies a job description.
type Industry string

const (
	IndustryTechnology Industry = "Technology"
	IndustryFinance    Industry = "Finance"
	IndustryHealthcare Industry = "Healthcare"
	IndustryRetail     Industry = "Retail"
	IndustryEducation  Industry = "Education"
	IndustryMarketing  Industry = "Marketing"
)

// Defaults used when extraction finds nothing.
const (
	DefaultTitle      = "Software Engineer"
	DefaultCompany    = "TechCorp"
	DefaultExperience = "Not specified"

	maxTitleLength = 100
)

// JobDescription is the result of parsing a job posting.
type JobDescription struct {
	Title       string   `json:"title" yaml:"title"`
	Company     string   `json:"company" yaml:"company"`
	Skills      []string `json:"skills" yaml:"skills"`
	Experience  string   `json:"experience" yaml:"experience"`
	Description string   `json:"description" yaml:"description"`
	Industry    Industry `json:"industry" yaml:"industry"`
}

// KnownSkills is the reference list scanned for skills, in output order.
var KnownSkills = []string{
	"javascript", "typescript", "react", "vue", "angular", "node.js", "python",
	"java", "c++", "c#", "go", "rust", "swift", "kotlin", "php", "ruby",
	"html", "css", "sass", "bootstrap", "tailwind", "sql", "mongodb",
	"postgresql", "mysql", "redis", "docker", "kubernetes", "aws", "azure",
	"gcp", "git", "jenkins", "terraform", "ansible", "microservices",
	"rest", "graphql", "websockets", "oauth", "jwt", "testing", "jest",
	"cypress", "selenium", "agile", "scrum", "kanban", "jira", "confluence",
	"figma", "sketch", "adobe", "photoshop", "illustrator", "ux", "ui",
	"design thinking", "user research", "wireframing", "prototyping",
}

// industryRules are checked in order; the first rule with a matching term wins.
var industryRules = []struct {
	industry Industry
	terms    []string
}{
	{IndustryFinance, []string{"finance", "banking"}},
	{IndustryHealthcare, []string{"healthcare", "medical"}},
	{IndustryRetail, []string{"retail", "ecommerce"}},
	{IndustryEducation, []string{"education", "edtech"}},
	{IndustryMarketing, []string{"marketing", "advertising"}},
}

var (
	experiencePattern = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`)

	// "at" followed by capitalised words on the same line.
	companyPattern = regexp.MustCompile(`\bat\s+([A-Z][a-zA-Z&]*(?:[ \t]+[A-Z&][a-zA-Z&]*)*)`)

	// skillNeedles holds the match form of each KnownSkills entry.
	skillNeedles = func() []string {
		out := make([]string, len(KnownSkills))
		for i, s := range KnownSkills {
			out[i] = strings.ReplaceAll(strings.ToLower(s), ".", "")
		}
		return out
	}()
)

// Parse extracts a JobDescription from text. It is a pure function.
func Parse(text string) JobDescription {
	folded := strings.ToLower(text)

	return JobDescription{
		Title:       extractTitle(text),
		Company:     extractCompany(text),
		Skills:      extractSkills(folded),
		Experience:  extractExperience(text),
		Description: text,
		Industry:    classifyIndustry(folded),
	}
}

func extractSkills(folded string) []string {
	skills := []string{}
	for i, needle := range skillNeedles {
		if strings.Contains(folded, needle) {
			skills = append(skills, KnownSkills[i])
		}
	}
	return skills
}

func extractExperience(text string) string {
	m := experiencePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultExperience
	}
	return m[1] + "+ years"
}

func classifyIndustry(folded string) Industry {
	for _, rule := range industryRules {
		for _, term := range rule.terms {
			if strings.Contains(folded, term) {
				return rule.industry
			}
		}
	}
	return IndustryTechnology
}

func extractTitle(text string) string {
	var title string
	if line, _, found := strings.Cut(text, "\n"); found && strings.TrimSpace(line) != "" {
		title = line
	} else {
		title, _, _ = strings.Cut(text, ".")
	}

	title = strings.TrimSpace(title)
	if len(title) > maxTitleLength {
		return DefaultTitle
	}
	return title
}

func extractCompany(text string) string {
	m := companyPattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultCompany
	}
	return strings.TrimSpace(m[1])
}
