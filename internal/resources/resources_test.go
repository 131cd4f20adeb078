package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/rehearse/internal/jobdesc"
)

func TestAll(t *testing.T) {
	full := All(0)
	assert.Len(t, full.SalaryNegotiation, 8)
	assert.Len(t, full.BodyLanguage, 8)
	assert.Equal(t, STARMethodURL, full.STARMethod)
	assert.Len(t, full.Industries, 4)
	for _, iq := range full.Industries {
		assert.Len(t, iq.Questions, 2, "industry %s", iq.Industry)
	}

	capped := All(6)
	assert.Len(t, capped.SalaryNegotiation, 6)
	assert.Len(t, capped.BodyLanguage, 6)
}

func TestAllReturnsCopies(t *testing.T) {
	b := All(0)
	b.SalaryNegotiation[0] = "mutated"
	assert.NotEqual(t, "mutated", All(0).SalaryNegotiation[0])
}

func TestQuestionsFor(t *testing.T) {
	assert.Len(t, QuestionsFor(jobdesc.IndustryHealthcare), 3)
	assert.Nil(t, QuestionsFor(jobdesc.IndustryMarketing))
}
