package models

import "time"

// Поддерживаемые предметы.
const (
	SubjectMath    = "math"
	SubjectEnglish = "english"
)

// Enrollment представляет одну строку профиля обучения:
// пара (ребёнок, предмет) с классом и временем доставки.
// Время доставки и дата последней отправки трактуются как общие
// для всех строк пользователя, хотя хранятся построчно.
type Enrollment struct {
	ID           int        // Идентификатор строки
	UserUID      string     // Владелец профиля
	ChildName    string     // Имя ребёнка
	Subject      string     // Предмет, math или english
	Grade        int        // Класс, 1..8
	DeliveryTime string     // Предпочтительное время доставки, "09:00 AM"
	LastSentDate *time.Time // Дата последней отправки письма (только дата)
}

// Profile агрегирует строки подписки пользователя в один ответ API.
type Profile struct {
	ChildName    string   `json:"child_name"`
	Grade        int      `json:"grade"`
	Subjects     []string `json:"subjects"`
	DeliveryTime string   `json:"delivery_time"`
}

// DummyProfile используется для приёма данных формы профиля из JSON-запроса,
// прежде чем конвертировать их в строки Enrollment.
type DummyProfile struct {
	ChildName    string   `json:"child_name" validate:"required,min=1,max=100"`              // Имя ребёнка
	Grade        int      `json:"grade" validate:"required,min=1,max=8"`                     // Класс
	Subjects     []string `json:"subjects" validate:"required,min=1,dive,oneof=math english"` // Предметы, минимум один
	DeliveryTime string   `json:"delivery_time" validate:"required"`                         // Время в формате "09:00 AM"
}
