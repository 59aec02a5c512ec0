package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

var exportHeaders = []string{"ID вопроса", "Дисциплина", "Тип", "Уровень", "Формулировка", "Ответ", "Варианты", "Правильный вариант"}

// exportRow собирает строку экспорта для одного вопроса
func exportRow(q service.QuestionWithOptions) []string {
	subject := ""
	if q.Question.Subject != nil {
		subject = q.Question.Subject.Name
	}
	answer := ""
	if q.Question.Answer != nil {
		answer = *q.Question.Answer
	}

	texts := make([]string, 0, len(q.Options))
	correct := ""
	for _, o := range q.Options {
		texts = append(texts, o.OptionText)
		if o.IsCorrect {
			correct = o.OptionText
		}
	}

	return []string{
		q.Question.ID.String(),
		sanitizeForExcel(subject),
		string(q.Question.Type),
		string(q.Question.Level),
		sanitizeForExcel(q.Question.Statement),
		sanitizeForExcel(answer),
		sanitizeForExcel(strings.Join(texts, " | ")),
		sanitizeForExcel(correct),
	}
}

// ExportQuestions выгружает вопросы с вариантами в CSV или Excel
// GET /api/questions/export?subject_id=&format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		handleError(c, "QuestionHandler", apperrors.NewFieldError("format", "must be one of csv, xlsx"))
		return
	}

	subjectID, err := parseSubjectQuery(c)
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}

	questions, err := h.questionService.Export(c.Request.Context(), subjectID)
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().Format("2006-01-02"))

	if format == "xlsx" {
		h.exportXLSX(c, questions, filename)
		return
	}
	h.exportCSV(c, questions, filename)
}

// exportCSV пишет CSV с BOM для корректного открытия UTF-8 в Excel.
// Заголовки уже отправлены, поэтому ошибки записи только логируются.
func (h *QuestionHandler) exportCSV(c *gin.Context, questions []service.QuestionWithOptions, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи BOM: %v", err)
		return
	}

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(exportHeaders); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи заголовков CSV: %v", err)
		return
	}
	for i, q := range questions {
		if err := writer.Write(exportRow(q)); err != nil {
			log.Printf("[QuestionHandler] Ошибка записи строки CSV %d: %v", i+2, err)
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("[QuestionHandler] Ошибка при Flush CSV: %v", err)
	}
}

// exportXLSX пишет Excel файл через StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, questions []service.QuestionWithOptions, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file", "error_type": "internal_server_error"})
		return
	}

	if err := sw.SetRow("A1", toCells(exportHeaders)); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи заголовков: %v", err)
	}
	for i, q := range questions {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, toCells(exportRow(q))); err != nil {
			log.Printf("[QuestionHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		log.Printf("[QuestionHandler] Ошибка при Flush: %v", err)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи Excel в response: %v", err)
	}
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
