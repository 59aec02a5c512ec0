package dto

// SubjectRequest тело запроса создания дисциплины
type SubjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateSubjectRequest тело запроса изменения дисциплины
type UpdateSubjectRequest struct {
	Name *string `json:"name"`
}
