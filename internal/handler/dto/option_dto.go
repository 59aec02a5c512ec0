package dto

// OptionRequest тело запроса создания или изменения варианта ответа.
// При изменении отсутствующие поля не меняются.
type OptionRequest struct {
	OptionText *string `json:"option_text"`
	IsCorrect  *bool   `json:"is_correct"`
}
