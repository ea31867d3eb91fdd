package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
)

type PurchasesHandler struct {
	svs PurchaseServicer
}

func NewPurchasesHandler(svs PurchaseServicer) *PurchasesHandler {
	return &PurchasesHandler{
		svs: svs,
	}
}

type CreatePurchaseParams struct {
	CourseID string `json:"course_id" binding:"required"`
}

type PurchaseResponse struct {
	PurchaseID  uuid.UUID `json:"purchase_id"`
	CourseID    uuid.UUID `json:"course_id"`
	PointsSpent int64     `json:"points_spent"`
	Balance     int64     `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// Create POST RouteGroup + PurchasesRoute.
func (h *PurchasesHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params CreatePurchaseParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	courseID, parseErr := uuid.Parse(params.CourseID)
	if parseErr != nil {
		c.AbortWithStatus(http.StatusUnprocessableEntity)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, purchaseErr := h.svs.Purchase(reqCtx, currentUserID, courseID)
	if purchaseErr != nil {
		var alreadyOwned *domain.AlreadyOwnedError

		switch {
		case errors.As(purchaseErr, &alreadyOwned):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "course already purchased"})
		case errors.Is(purchaseErr, domain.ErrNotEnoughPoints):
			c.AbortWithStatus(http.StatusPaymentRequired)
		case errors.Is(purchaseErr, domain.ErrProfileUnavailable),
			errors.Is(purchaseErr, domain.ErrRecordNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, purchaseErr).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusCreated, &PurchaseResponse{
		PurchaseID:  result.Purchase.ID,
		CourseID:    result.Purchase.CourseID,
		PointsSpent: result.Purchase.PointsSpent,
		Balance:     result.Balance,
		CreatedAt:   result.Purchase.CreatedAt,
	})
}

type CourseResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PointsPrice int64     `json:"points_price"`
}

func courseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		PointsPrice: course.PointsPrice,
	}
}

// Index GET RouteGroup + PurchasesRoute.
func (h *PurchasesHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	courses, err := h.svs.PurchasedCourses(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	var response = make([]CourseResponse, len(courses))
	for i := range courses {
		response[i] = courseResponse(&courses[i])
	}
	c.JSON(http.StatusOK, response)
}

// Courses GET RouteGroup + CoursesRoute.
func (h *PurchasesHandler) Courses(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	courses, err := h.svs.Courses(reqCtx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	var response = make([]CourseResponse, len(courses))
	for i := range courses {
		response[i] = courseResponse(&courses[i])
	}
	c.JSON(http.StatusOK, response)
}

// Course GET RouteGroup + CourseRoute.
func (h *PurchasesHandler) Course(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	course, err := h.svs.CourseByID(reqCtx, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, courseResponse(course))
}
