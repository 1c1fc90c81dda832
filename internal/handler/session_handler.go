package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizzy-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
	"github.com/yourusername/quizzy-api/internal/service"
	"github.com/yourusername/quizzy-api/internal/service/session"
)

// SessionHandler обрабатывает запросы прохождения викторин
type SessionHandler struct {
	manager       *session.Manager
	resultService *service.ResultService
}

// NewSessionHandler создает новый обработчик сессий
func NewSessionHandler(manager *session.Manager, resultService *service.ResultService) *SessionHandler {
	return &SessionHandler{
		manager:       manager,
		resultService: resultService,
	}
}

// StartSession запускает прохождение викторины
// POST /api/quizzes/:id/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	sess, err := h.manager.StartSession(quizID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionStateResponse(sess))
}

// GetState возвращает текущее состояние сессии
func (h *SessionHandler) GetState(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionStateResponse(sess))
}

// AnswerRequest представляет выбор варианта ответа
type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	OptionID   string `json:"optionId" binding:"required"`
}

// SelectAnswer записывает выбор респондента для текущего вопроса
// POST /api/sessions/:sessionId/answer
func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Повреждённый payload не роняет прохождение: клиенту предлагается
		// вернуться на стартовую страницу викторины
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    err.Error(),
			"redirect": fmt.Sprintf("/api/quizzes/%s/intro", sess.Quiz.ID),
		})
		return
	}

	if err := sess.SelectAnswer(req.QuestionID, req.OptionID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionStateResponse(sess))
}

// SubmitAnswer фиксирует ответ на текущий вопрос и показывает обратную связь
// POST /api/sessions/:sessionId/submit
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if err := sess.Submit(); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionStateResponse(sess))
}

// NextQuestion переходит к следующему вопросу или завершает сессию
// POST /api/sessions/:sessionId/next
func (h *SessionHandler) NextQuestion(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if err := sess.Next(); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionStateResponse(sess))
}

// PreviousQuestion возвращается к предыдущему вопросу
// POST /api/sessions/:sessionId/previous
func (h *SessionHandler) PreviousQuestion(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if err := sess.Previous(); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionStateResponse(sess))
}

// AbandonSession прерывает прохождение без записи попытки
// DELETE /api/sessions/:sessionId
func (h *SessionHandler) AbandonSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	h.manager.Abandon(sessionID)

	c.JSON(http.StatusOK, gin.H{"message": "Session abandoned"})
}

// GetResults возвращает результаты завершенной сессии.
// Первое обращение записывает попытку; повторные — идемпотентны.
// GET /api/sessions/:sessionId/results
func (h *SessionHandler) GetResults(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	result, err := h.resultService.SessionResults(sess)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	message := service.PerformanceMessage(result.Percentage)
	c.JSON(http.StatusOK, dto.NewSessionResultsResponse(sess, result, message))
}

// session загружает сессию из менеджера по ID из контекста.
// При отсутствии сессии сам пишет ответ и возвращает ok=false.
func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	sessionID := c.MustGet("sessionID").(string)

	sess, err := h.manager.Session(sessionID)
	if err != nil {
		h.handleSessionError(c, err)
		return nil, false
	}
	return sess, true
}

// handleSessionError обрабатывает ошибки сессий и отправляет соответствующий HTTP ответ
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrMalformedInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in SessionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
