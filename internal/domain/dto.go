package domain

type PaymentOrderStatus string

// Статусы платежного ордера. Переходы только pending -> verified и pending -> failed.
const (
	PaymentOrderStatusPending  PaymentOrderStatus = "pending"
	PaymentOrderStatusVerified PaymentOrderStatus = "verified"
	PaymentOrderStatusFailed   PaymentOrderStatus = "failed"
)

type QuestionJobStatus string

const (
	QuestionJobStatusNew        QuestionJobStatus = "NEW"
	QuestionJobStatusProcessing QuestionJobStatus = "PROCESSING"
	QuestionJobStatusDone       QuestionJobStatus = "DONE"
	QuestionJobStatusInvalid    QuestionJobStatus = "INVALID"
)
