package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/transport/api/middlewares"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. В случае, если значения в контексте нет или ошибка
// утверждения типа - вернется uuid.Nil.
func getUserIDFromContext(c *gin.Context) uuid.UUID {
	raw, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return uuid.Nil
	}
	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// parseUUIDParam парсит uuid из path-параметра. Невалидный uuid прерывает запрос
// со статусом 422.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatus(http.StatusUnprocessableEntity)
		return uuid.Nil, false
	}
	return id, true
}
