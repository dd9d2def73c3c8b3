package models

// Question — эфемерный вопрос для практики. Не сохраняется в базе:
// генерируется заново при каждом запросе или тике планировщика.
type Question struct {
	Subject     string `json:"subject"`
	Grade       int    `json:"grade"`
	Text        string `json:"text"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// SubjectBundle группирует вопросы одного предмета для письма и ответа API.
type SubjectBundle struct {
	Subject   string     `json:"subject"`
	Questions []Question `json:"questions"`
}
