package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/metrics"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	"github.com/fsdevblog/course-points/pkg/uow"
)

const (
	// AttemptSampleSize столько вопросов из банка курса попадает в одну попытку теста.
	AttemptSampleSize = 20
	// questionMarks все сгенерированные вопросы стоят одинаково.
	questionMarks int32 = 5
	// maxQuestionBankSize верхняя граница размера банка вопросов курса.
	maxQuestionBankSize = 40
	// maxJobAttempts после стольких неудач генерации задача помечается INVALID.
	maxJobAttempts int32 = 5
)

type QuizService struct {
	uow          uow.UOW
	questionRepo QuestionRepository
	purchaseRepo PurchaseRepository
	courseRepo   CourseRepository
	jobRepo      QuestionJobRepository
	resultRepo   TestResultRepository
}

func NewQuizService(u uow.UOW) (*QuizService, error) {
	questionRepo, questionRepoErr := uow.GetRepositoryAs[QuestionRepository](
		u, uow.RepositoryName(repoargs.QuestionRepoName))
	if questionRepoErr != nil {
		return nil, questionRepoErr
	}
	purchaseRepo, purchaseRepoErr := uow.GetRepositoryAs[PurchaseRepository](
		u, uow.RepositoryName(repoargs.PurchaseRepoName))
	if purchaseRepoErr != nil {
		return nil, purchaseRepoErr
	}
	courseRepo, courseRepoErr := uow.GetRepositoryAs[CourseRepository](u, uow.RepositoryName(repoargs.CourseRepoName))
	if courseRepoErr != nil {
		return nil, courseRepoErr
	}
	jobRepo, jobRepoErr := uow.GetRepositoryAs[QuestionJobRepository](
		u, uow.RepositoryName(repoargs.QuestionJobRepoName))
	if jobRepoErr != nil {
		return nil, jobRepoErr
	}
	resultRepo, resultRepoErr := uow.GetRepositoryAs[TestResultRepository](
		u, uow.RepositoryName(repoargs.TestResultRepoName))
	if resultRepoErr != nil {
		return nil, resultRepoErr
	}
	return &QuizService{
		uow:          u,
		questionRepo: questionRepo,
		purchaseRepo: purchaseRepo,
		courseRepo:   courseRepo,
		jobRepo:      jobRepo,
		resultRepo:   resultRepo,
	}, nil
}

// requireOwnership проверяет, что юзер купил курс. Нет покупки -> domain.ErrCourseNotOwned.
func (s *QuizService) requireOwnership(ctx context.Context, userID, courseID uuid.UUID) error {
	if _, err := s.purchaseRepo.FindByUserAndCourse(ctx, userID, courseID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrCourseNotOwned
		}
		return err //nolint:wrapcheck
	}
	return nil
}

// QuestionsForAttempt возвращает случайную выборку вопросов (до AttemptSampleSize) для
// попытки теста. Доступно только владельцу курса. Пустой срез означает, что банк вопросов
// еще не сгенерирован.
func (s *QuizService) QuestionsForAttempt(
	ctx context.Context,
	userID uuid.UUID,
	courseID uuid.UUID,
) ([]domain.TestQuestion, error) {
	if ownErr := s.requireOwnership(ctx, userID, courseID); ownErr != nil {
		return nil, fmt.Errorf("questions for attempt: %w", ownErr)
	}

	questions, questionsErr := s.questionRepo.GetByCourseID(ctx, courseID)
	if questionsErr != nil {
		return nil, fmt.Errorf("questions for attempt: %w", questionsErr)
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > AttemptSampleSize {
		questions = questions[:AttemptSampleSize]
	}
	return questions, nil
}

type AttemptAnswer struct {
	QuestionID uuid.UUID
	Answer     int16
}

// SubmitAttempt оценивает попытку теста. Ответы приходят парами (id вопроса, индекс
// варианта) для показанной юзеру выборки; балл считается на сервере - присланным
// клиентом баллам доверия нет. Неизвестные и повторяющиеся id вопросов ->
// domain.ErrInvalidInput.
func (s *QuizService) SubmitAttempt(
	ctx context.Context,
	userID uuid.UUID,
	courseID uuid.UUID,
	answers []AttemptAnswer,
) (*domain.TestResult, error) {
	if ownErr := s.requireOwnership(ctx, userID, courseID); ownErr != nil {
		return nil, fmt.Errorf("submitting attempt: %w", ownErr)
	}

	if len(answers) == 0 {
		return nil, fmt.Errorf("submitting attempt: empty answers: %w", domain.ErrInvalidInput)
	}

	ids := make([]uuid.UUID, 0, len(answers))
	seen := make(map[uuid.UUID]struct{}, len(answers))
	for _, answer := range answers {
		if _, ok := seen[answer.QuestionID]; ok {
			return nil, fmt.Errorf("submitting attempt: duplicate question %s: %w",
				answer.QuestionID, domain.ErrInvalidInput)
		}
		seen[answer.QuestionID] = struct{}{}
		ids = append(ids, answer.QuestionID)
	}

	questions, questionsErr := s.questionRepo.GetByIDs(ctx, courseID, ids)
	if questionsErr != nil {
		return nil, fmt.Errorf("submitting attempt: %w", questionsErr)
	}
	byID := make(map[uuid.UUID]domain.TestQuestion, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}

	var score, maxScore int32
	for _, answer := range answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			return nil, fmt.Errorf("submitting attempt: unknown question %s: %w",
				answer.QuestionID, domain.ErrInvalidInput)
		}
		maxScore += question.Marks
		if answer.Answer == question.CorrectAnswer {
			score += question.Marks
		}
	}

	result, createErr := s.resultRepo.Create(ctx, repoargs.TestResultCreate{
		UserID:   userID,
		CourseID: courseID,
		Score:    score,
		MaxScore: maxScore,
	})
	if createErr != nil {
		return nil, fmt.Errorf("submitting attempt: %w", createErr)
	}
	return result, nil
}

// ResultsByUser возвращает результаты тестов юзера.
func (s *QuizService) ResultsByUser(ctx context.Context, userID uuid.UUID) ([]domain.TestResult, error) {
	results, err := s.resultRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return results, nil
}

// ProvisionTask задача генерации вопросов для фонового процессора.
type ProvisionTask struct {
	JobID       int64
	CourseID    uuid.UUID
	Title       string
	Description string
}

// TasksForProvisioning забирает в работу до limit задач генерации и дополняет их данными
// курса, которые нужны генератору.
func (s *QuizService) TasksForProvisioning(ctx context.Context, limit uint) ([]ProvisionTask, error) {
	jobs, claimErr := s.jobRepo.ClaimBatch(ctx, limit)
	if claimErr != nil {
		return nil, fmt.Errorf("tasks for provisioning: %w", claimErr)
	}

	var tasks = make([]ProvisionTask, 0, len(jobs))
	for _, job := range jobs {
		course, courseErr := s.courseRepo.FindByID(ctx, job.CourseID)
		if courseErr != nil {
			if markErr := s.jobRepo.MarkFailed(ctx, job.ID, maxJobAttempts); markErr != nil {
				return nil, fmt.Errorf("tasks for provisioning: %w", markErr)
			}
			continue
		}
		tasks = append(tasks, ProvisionTask{
			JobID:       job.ID,
			CourseID:    course.ID,
			Title:       course.Title,
			Description: course.Description,
		})
	}
	return tasks, nil
}

type GeneratedQuestion struct {
	Question      string
	Options       []string
	CorrectAnswer int16
}

type ApplyGeneratedArgs struct {
	Error     error
	JobID     int64
	CourseID  uuid.UUID
	Questions []GeneratedQuestion
}

// ApplyGenerated применяет результаты генерации вопросов.
//
// Для каждой успешной задачи банк вопросов курса заменяется новым набором и задача
// помечается DONE - в одной транзакции. Неудачные задачи получают инкремент счетчика
// попыток. Генерация - best-effort сторона покупки: ошибки здесь никогда не откатывают
// саму покупку.
func (s *QuizService) ApplyGenerated(ctx context.Context, updates []ApplyGeneratedArgs) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		questionRepo, questionRepoErr := uow.GetAs[QuestionRepository](
			tx, uow.RepositoryName(repoargs.QuestionRepoName))
		if questionRepoErr != nil {
			return questionRepoErr //nolint:wrapcheck
		}
		jobRepo, jobRepoErr := uow.GetAs[QuestionJobRepository](
			tx, uow.RepositoryName(repoargs.QuestionJobRepoName))
		if jobRepoErr != nil {
			return jobRepoErr //nolint:wrapcheck
		}

		for _, update := range updates {
			if applyErr := s.applyUpdate(c, questionRepo, jobRepo, update); applyErr != nil {
				return applyErr
			}
		}
		return nil
	})

	if txErr != nil {
		return fmt.Errorf("applying generated questions: %w", txErr)
	}
	return nil
}

func (s *QuizService) applyUpdate(
	ctx context.Context,
	questionRepo QuestionRepository,
	jobRepo QuestionJobRepository,
	update ApplyGeneratedArgs,
) error {
	questions := validQuestions(update.Questions)

	if update.Error != nil || len(questions) == 0 {
		return jobRepo.MarkFailed(ctx, update.JobID, maxJobAttempts) //nolint:wrapcheck
	}

	if len(questions) > maxQuestionBankSize {
		questions = questions[:maxQuestionBankSize]
	}

	var createArgs = make([]repoargs.QuestionCreate, len(questions))
	for i, question := range questions {
		createArgs[i] = repoargs.QuestionCreate{
			CourseID:      update.CourseID,
			Question:      question.Question,
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			Marks:         questionMarks,
		}
	}

	if replaceErr := questionRepo.ReplaceForCourse(ctx, update.CourseID, createArgs); replaceErr != nil {
		return replaceErr //nolint:wrapcheck
	}
	if doneErr := jobRepo.MarkDone(ctx, update.JobID); doneErr != nil {
		return doneErr //nolint:wrapcheck
	}
	metrics.QuestionSetsProvisioned.Inc()
	return nil
}

// validQuestions отбрасывает вопросы с неполными вариантами или индексом ответа вне 0..3.
// Генератор - LLM, его выводу нужна проверка формы.
func validQuestions(questions []GeneratedQuestion) []GeneratedQuestion {
	var valid = make([]GeneratedQuestion, 0, len(questions))
	for _, question := range questions {
		if question.Question == "" || len(question.Options) != 4 {
			continue
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer > 3 {
			continue
		}
		valid = append(valid, question)
	}
	return valid
}
