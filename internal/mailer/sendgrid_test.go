package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/daily-practice/internal/models"
)

func sampleBundles() []models.SubjectBundle {
	return []models.SubjectBundle{
		{
			Subject: models.SubjectMath,
			Questions: []models.Question{
				{Subject: models.SubjectMath, Grade: 2, Text: "What is 3 + 4?", Answer: "7", Explanation: "Start at 3 and count up 4 more to reach 7."},
				{Subject: models.SubjectMath, Grade: 2, Text: "What is 9 - 5?", Answer: "4"},
			},
		},
		{
			Subject: models.SubjectEnglish,
			Questions: []models.Question{
				{Subject: models.SubjectEnglish, Grade: 2, Text: "What is the opposite of \"hot\"?", Answer: "cold", Explanation: "The opposite of \"hot\" is \"cold\"."},
			},
		},
	}
}

func TestBuildHTML_GroupsBySubject(t *testing.T) {
	html := BuildHTML("Alex", sampleBundles())

	assert.Contains(t, html, "<h1>Practice questions for Alex</h1>")
	assert.Contains(t, html, "<h2>Math</h2>")
	assert.Contains(t, html, "<h2>English</h2>")
	assert.Contains(t, html, "What is 3 + 4?")
	assert.Contains(t, html, "<b>Answer:</b> 7")
	assert.Contains(t, html, "cold")

	// Предмет идёт раньше своих вопросов.
	assert.Less(t, strings.Index(html, "<h2>Math</h2>"), strings.Index(html, "What is 3 + 4?"))
	assert.Less(t, strings.Index(html, "<h2>English</h2>"), strings.Index(html, "cold"))
}

func TestBuildHTML_EscapesUserContent(t *testing.T) {
	bundles := []models.SubjectBundle{
		{
			Subject: models.SubjectEnglish,
			Questions: []models.Question{
				{Text: "Is <b> a tag?", Answer: "yes & no"},
			},
		},
	}

	html := BuildHTML("<script>alert(1)</script>", bundles)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Is &lt;b&gt; a tag?")
	assert.Contains(t, html, "yes &amp; no")
}

func TestBuildHTML_SkipsEmptyExplanation(t *testing.T) {
	html := BuildHTML("Alex", sampleBundles())

	// Ровно два пояснения в примере, значит ровно два курсивных блока.
	assert.Equal(t, 2, strings.Count(html, "<i>"))
}

func TestBuildPlainText_ContainsAllQuestions(t *testing.T) {
	text := BuildPlainText("Alex", sampleBundles())

	assert.Contains(t, text, "Practice questions for Alex")
	assert.Contains(t, text, "MATH")
	assert.Contains(t, text, "ENGLISH")
	assert.Contains(t, text, "1. What is 3 + 4?")
	assert.Contains(t, text, "Answer: 7")
	assert.Contains(t, text, "2. What is 9 - 5?")
}
