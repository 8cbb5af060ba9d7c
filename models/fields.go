package models

// InputKind вид поля ввода формы
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputEmail    InputKind = "email"
	InputTel      InputKind = "tel"
	InputDate     InputKind = "date"
	InputSelect   InputKind = "select"
	InputTextarea InputKind = "textarea"
)

// FieldSpec описание одного редактируемого поля записи
type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     InputKind `json:"type"`
	Options  []string  `json:"options,omitempty"`
	Step     string    `json:"step,omitempty"`
	Required bool      `json:"required"`
}
