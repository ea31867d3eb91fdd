package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/service"
)

type QuizHandler struct {
	svs QuizServicer
}

func NewQuizHandler(svs QuizServicer) *QuizHandler {
	return &QuizHandler{
		svs: svs,
	}
}

// QuestionResponse вопрос попытки. Правильный ответ наружу не отдается.
type QuestionResponse struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Options  []string  `json:"options"`
	Marks    int32     `json:"marks"`
}

// Questions GET RouteGroup + CourseTestRoute.
func (h *QuizHandler) Questions(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	courseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	questions, err := h.svs.QuestionsForAttempt(reqCtx, currentUserID, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotOwned) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	var response = make([]QuestionResponse, len(questions))
	for i, question := range questions {
		response[i] = QuestionResponse{
			ID:       question.ID,
			Question: question.Question,
			Options:  question.Options,
			Marks:    question.Marks,
		}
	}
	c.JSON(http.StatusOK, response)
}

type AttemptAnswerParams struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     *int16 `json:"answer" binding:"required,gte=0,lte=3"`
}

type SubmitParams struct {
	Answers []AttemptAnswerParams `json:"answers" binding:"required,dive"`
}

type TestResultResponse struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Score     int32     `json:"score"`
	MaxScore  int32     `json:"max_score"`
	CreatedAt time.Time `json:"created_at"`
}

// Submit POST RouteGroup + CourseTestRoute.
func (h *QuizHandler) Submit(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	courseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var params SubmitParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	answers := make([]service.AttemptAnswer, len(params.Answers))
	for i, answer := range params.Answers {
		questionID, parseErr := uuid.Parse(answer.QuestionID)
		if parseErr != nil {
			c.AbortWithStatus(http.StatusUnprocessableEntity)
			return
		}
		answers[i] = service.AttemptAnswer{
			QuestionID: questionID,
			Answer:     *answer.Answer,
		}
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.svs.SubmitAttempt(reqCtx, currentUserID, courseID, answers)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCourseNotOwned):
			c.AbortWithStatus(http.StatusForbidden)
		case errors.Is(err, domain.ErrInvalidInput):
			c.AbortWithStatus(http.StatusUnprocessableEntity)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusCreated, &TestResultResponse{
		ID:        result.ID,
		CourseID:  result.CourseID,
		Score:     result.Score,
		MaxScore:  result.MaxScore,
		CreatedAt: result.CreatedAt,
	})
}

// Results GET RouteGroup + TestResultsRoute.
func (h *QuizHandler) Results(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	results, err := h.svs.ResultsByUser(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	var response = make([]TestResultResponse, len(results))
	for i, result := range results {
		response[i] = TestResultResponse{
			ID:        result.ID,
			CourseID:  result.CourseID,
			Score:     result.Score,
			MaxScore:  result.MaxScore,
			CreatedAt: result.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, response)
}
