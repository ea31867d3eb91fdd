package repoargs

import "github.com/google/uuid"

type QuestionCreate struct {
	CourseID      uuid.UUID
	Question      string
	Options       []string
	CorrectAnswer int16
	Marks         int32
}

type TestResultCreate struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
	Score    int32
	MaxScore int32
}
