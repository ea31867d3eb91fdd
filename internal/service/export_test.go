package service

const (
	MaxQuestionBankSize = maxQuestionBankSize
	MaxJobAttempts      = maxJobAttempts
	QuestionMarks       = questionMarks
)
