package repoargs

type RepositoryName string

const (
	UserRepoName         RepositoryName = "user"
	CourseRepoName       RepositoryName = "course"
	PurchaseRepoName     RepositoryName = "purchase"
	PaymentOrderRepoName RepositoryName = "payment_order"
	QuestionRepoName     RepositoryName = "question"
	QuestionJobRepoName  RepositoryName = "question_job"
	TestResultRepoName   RepositoryName = "test_result"
)
