package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
	"github.com/yourusername/quizzy-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
	"github.com/yourusername/quizzy-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, resultService *service.ResultService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
	}
}

// OptionPayload представляет вариант ответа в запросе редактора
type OptionPayload struct {
	ID        string `json:"id"`
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionPayload представляет вопрос в запросе редактора
type QuestionPayload struct {
	ID           string          `json:"id"`
	Type         string          `json:"type" binding:"required"`
	QuestionText string          `json:"questionText" binding:"required"`
	Options      []OptionPayload `json:"options" binding:"required,min=2"`
	TimeLimit    *int            `json:"timeLimit"`
	Explanation  string          `json:"explanation"`
}

// QuizPayload представляет запрос на создание/обновление викторины
type QuizPayload struct {
	Title       string            `json:"title" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"omitempty,max=1000"`
	Category    string            `json:"category"`
	IsPublic    bool              `json:"isPublic"`
	Questions   []QuestionPayload `json:"questions"`
}

// toEntity преобразует запрос редактора в доменную сущность
func (p *QuizPayload) toEntity() *entity.Quiz {
	quiz := &entity.Quiz{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		IsPublic:    p.IsPublic,
		Questions:   make([]entity.Question, 0, len(p.Questions)),
	}
	for _, q := range p.Questions {
		options := make([]entity.QuestionOption, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, entity.QuestionOption{
				ID:        o.ID,
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, entity.Question{
			ID:           q.ID,
			Type:         q.Type,
			QuestionText: q.QuestionText,
			Options:      options,
			TimeLimit:    q.TimeLimit,
			Explanation:  q.Explanation,
		})
	}
	return quiz
}

// ListQuizzes возвращает каталог викторин с фильтрацией
// GET /api/quizzes?search=...&category=...
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")

	quizzes, err := h.quizService.BrowseQuizzes(search, category)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizzes":    dto.NewListQuizResponse(quizzes),
		"total":      len(quizzes),
		"categories": service.Categories,
	})
}

// GetFeaturedQuizzes возвращает подборку для главной страницы
func (h *QuizHandler) GetFeaturedQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.FeaturedQuizzes()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": dto.NewListQuizResponse(quizzes)})
}

// GetMyQuizzes возвращает викторины текущего пользователя
func (h *QuizHandler) GetMyQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.MyQuizzes()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": dto.NewListQuizResponse(quizzes)})
}

// CreateQuiz обрабатывает запрос на создание викторины
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req QuizPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(req.toEntity())
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz))
}

// GetQuiz возвращает викторину в авторском представлении
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(string) // Получаем из контекста

	quiz, err := h.quizService.QuizByID(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// GetQuizIntro возвращает стартовую страницу прохождения: сводку без
// вопросов, число вопросов и оценку длительности
func (h *QuizHandler) GetQuizIntro(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	quiz, err := h.quizService.QuizByID(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizIntroResponse(quiz))
}

// UpdateQuiz обрабатывает запрос на обновление викторины
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	var req QuizPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(quizID, req.toEntity())
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// DeleteQuiz обрабатывает запрос на удаление викторины
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// DuplicateQuiz обрабатывает запрос на дублирование существующей викторины
func (h *QuizHandler) DuplicateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	duplicate, err := h.quizService.DuplicateQuiz(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(duplicate))
}

// GetQuizAttempts возвращает записи о прохождениях викторины
func (h *QuizHandler) GetQuizAttempts(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	attempts, err := h.resultService.AttemptsForQuiz(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	response := make([]dto.AttemptResponse, len(attempts))
	for i := range attempts {
		response[i] = dto.NewAttemptResponse(&attempts[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": response,
		"total":    len(response),
	})
}

// ExportQuizAttempts экспортирует попытки викторины в CSV или Excel формате
// GET /api/quizzes/:id/attempts/export?format=csv|xlsx
func (h *QuizHandler) ExportQuizAttempts(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)
	format := c.DefaultQuery("format", "csv")

	quiz, err := h.quizService.QuizByID(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	attempts, err := h.resultService.AttemptsForQuiz(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%s_attempts_%s", quizID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, attempts, quiz, filename)
	default:
		h.exportCSV(c, attempts, quiz, filename)
	}
}

// exportCSV экспортирует попытки в CSV с правильным экранированием спецсимволов
func (h *QuizHandler) exportCSV(c *gin.Context, attempts []entity.QuizAttempt, quiz *entity.Quiz, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Викторина", "Сессия", "Счёт", "Всего вопросов", "Процент", "Завершено"})

	for _, a := range attempts {
		writer.Write([]string{
			sanitizeForExcel(quiz.Title),
			a.SessionID,
			strconv.Itoa(a.Score),
			strconv.Itoa(a.TotalQuestions),
			strconv.Itoa(attemptPercentage(&a)),
			a.CompletedAt.Format(time.RFC3339),
		})
	}
}

// exportXLSX экспортирует попытки в Excel с использованием StreamWriter
func (h *QuizHandler) exportXLSX(c *gin.Context, attempts []entity.QuizAttempt, quiz *entity.Quiz, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Попытки"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuizHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Викторина", "Сессия", "Счёт", "Всего вопросов", "Процент", "Завершено"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков: %v", err)
	}

	for i, a := range attempts {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			sanitizeForExcel(quiz.Title),
			a.SessionID,
			a.Score,
			a.TotalQuestions,
			attemptPercentage(&a),
			a.CompletedAt.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Ошибка записи Excel в response: %v", err)
	}
}

// attemptPercentage округляет процент попытки так же, как подсчёт результатов
func attemptPercentage(a *entity.QuizAttempt) int {
	if a.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(100 * float64(a.Score) / float64(a.TotalQuestions)))
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleQuizError обрабатывает ошибки от сервисов викторин и отправляет соответствующий HTTP ответ
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrMalformedInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
