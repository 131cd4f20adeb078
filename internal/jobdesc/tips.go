package jobdesc

import (
	"fmt"
	"strings"
)

var industryTips = map[Industry][]string{
	IndustryFinance: {
		"Understand regulatory compliance requirements",
		"Study fintech trends and security protocols",
	},
	IndustryHealthcare: {
		"Learn about HIPAA and patient data privacy",
		"Research healthcare technology trends",
	},
	IndustryRetail: {
		"Understand e-commerce trends and customer experience",
		"Study omnichannel retail strategies",
	},
}

// ResearchTips returns preparation advice for a parsed job description: five
// general tips followed by any industry-specific ones.
func ResearchTips(job JobDescription) []string {
	skills := "your core skills"
	if len(job.Skills) > 0 {
		skills = strings.Join(job.Skills, ", ")
	}

	tips := []string{
		fmt.Sprintf("Research %s's recent news, product launches, and company culture", job.Company),
		fmt.Sprintf("Study the %s industry trends and challenges", job.Industry),
		fmt.Sprintf("Prepare examples demonstrating your experience with: %s", skills),
		"Review the job requirements and match them to your background",
		"Prepare questions about the team structure and growth opportunities",
	}
	return append(tips, industryTips[job.Industry]...)
}
