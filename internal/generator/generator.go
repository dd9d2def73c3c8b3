// Package generator синтезирует практические вопросы для ребёнка.
// Чистая функция без состояния и ввода-вывода: один и тот же профиль
// каждый раз даёт свежий набор вопросов.
package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// Generator создаёт вопросы по предмету и классу.
type Generator struct{}

// New создает новый экземпляр Generator.
func New() *Generator {
	return &Generator{}
}

// Generate возвращает count вопросов для предмета и класса.
// Неизвестный предмет не даёт вопроса на своей итерации,
// поэтому результат может быть короче count.
func (g *Generator) Generate(subject string, grade, count int) []models.Question {
	result := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		switch subject {
		case models.SubjectMath:
			result = append(result, g.mathQuestion(grade))
		case models.SubjectEnglish:
			result = append(result, g.englishQuestion(grade))
		}
	}
	return result
}

// mathQuestion собирает арифметический пример. Диапазон операндов растёт
// с классом; вычитание всегда упорядочено, чтобы ответ был неотрицательным;
// умножение появляется с третьего класса.
func (g *Generator) mathQuestion(grade int) models.Question {
	maxOperand := 10 * grade
	if maxOperand < 10 {
		maxOperand = 10
	}

	operations := 2
	if grade >= 3 {
		operations = 3
	}

	var text, answer, explanation string
	switch rand.IntN(operations) {
	case 0:
		a, b := rand.IntN(maxOperand+1), rand.IntN(maxOperand+1)
		text = fmt.Sprintf("What is %d + %d?", a, b)
		answer = fmt.Sprintf("%d", a+b)
		explanation = fmt.Sprintf("Start at %d and count up %d more to reach %d.", a, b, a+b)
	case 1:
		a, b := rand.IntN(maxOperand+1), rand.IntN(maxOperand+1)
		if a < b {
			a, b = b, a
		}
		text = fmt.Sprintf("What is %d - %d?", a, b)
		answer = fmt.Sprintf("%d", a-b)
		explanation = fmt.Sprintf("Take %d away from %d and %d is left.", b, a, a-b)
	default:
		limit := grade + 2
		if limit > 12 {
			limit = 12
		}
		a, b := 2+rand.IntN(limit-1), 2+rand.IntN(limit-1)
		text = fmt.Sprintf("What is %d x %d?", a, b)
		answer = fmt.Sprintf("%d", a*b)
		explanation = fmt.Sprintf("%d groups of %d make %d.", a, b, a*b)
	}

	return models.Question{
		Subject:     models.SubjectMath,
		Grade:       grade,
		Text:        text,
		Answer:      answer,
		Explanation: explanation,
	}
}

// englishTemplates — небольшой фиксированный банк заданий по английскому.
var englishTemplates = []models.Question{
	{
		Text:        "What is the plural of \"child\"?",
		Answer:      "children",
		Explanation: "\"Child\" is an irregular noun, its plural is \"children\", not \"childs\".",
	},
	{
		Text:        "What is the opposite of \"hot\"?",
		Answer:      "cold",
		Explanation: "An antonym is a word with the opposite meaning. The opposite of \"hot\" is \"cold\".",
	},
	{
		Text:        "Fill in the blank: \"She ___ to school every day.\" (go)",
		Answer:      "goes",
		Explanation: "With \"she\", \"he\" or \"it\" the verb takes an -es or -s ending in the present simple.",
	},
	{
		Text:        "Which word is a noun: \"run\", \"happy\" or \"dog\"?",
		Answer:      "dog",
		Explanation: "A noun names a person, place or thing. \"Dog\" is a thing, so it is a noun.",
	},
	{
		Text:        "What is the past tense of \"eat\"?",
		Answer:      "ate",
		Explanation: "\"Eat\" is an irregular verb: eat, ate, eaten.",
	},
	{
		Text:        "Choose the correct article: \"I saw ___ elephant at the zoo.\"",
		Answer:      "an",
		Explanation: "\"An\" is used before words that start with a vowel sound, like \"elephant\".",
	},
	{
		Text:        "What is a synonym of \"big\"?",
		Answer:      "large",
		Explanation: "A synonym is a word with a similar meaning. \"Large\" means the same as \"big\".",
	},
	{
		Text:        "Fill in the blank: \"They ___ playing outside now.\" (be)",
		Answer:      "are",
		Explanation: "With \"they\" the present form of \"be\" is \"are\".",
	},
}

// englishQuestion выбирает задание из банка шаблонов.
func (g *Generator) englishQuestion(grade int) models.Question {
	q := englishTemplates[rand.IntN(len(englishTemplates))]
	q.Subject = models.SubjectEnglish
	q.Grade = grade
	return q
}
