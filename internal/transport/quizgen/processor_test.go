package quizgen

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/course-points/internal/service"
	"github.com/fsdevblog/course-points/internal/transport/quizgen/mocks"
)

type ProcessorTestSuite struct {
	suite.Suite
	processor      *Processor
	mockHTTPClient *mocks.MockClient
	mockService    *mocks.MockServicer
	ctrl           *gomock.Controller
}

func (s *ProcessorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.mockHTTPClient = mocks.NewMockClient(s.ctrl)
	s.mockService = mocks.NewMockServicer(s.ctrl)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s.processor = New(s.mockService, "", logger)
	s.processor.client = s.mockHTTPClient
}

func (s *ProcessorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

// TestProcess_NoJobs Тест на случай, когда очередь генерации пуста.
func (s *ProcessorTestSuite) TestProcess_NoJobs() {
	s.mockService.EXPECT().
		TasksForProvisioning(gomock.Any(), s.processor.limitPerIteration).
		Return([]service.ProvisionTask{}, nil)

	err := s.processor.process(s.T().Context())

	s.ErrorIs(err, ErrNoJobs)
}

// TestProcess_Success Тест на успешную генерацию вопросов для двух курсов.
func (s *ProcessorTestSuite) TestProcess_Success() {
	tasks := []service.ProvisionTask{
		{JobID: 1, CourseID: uuid.New(), Title: "Distributed Systems"},
		{JobID: 2, CourseID: uuid.New(), Title: "Compilers"},
	}
	generated := []service.GeneratedQuestion{
		{Question: "What is a quorum?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 0},
	}

	s.mockService.EXPECT().
		TasksForProvisioning(gomock.Any(), s.processor.limitPerIteration).
		Return(tasks, nil)

	s.mockHTTPClient.EXPECT().Generate(gomock.Any(), tasks[0]).Return(generated, nil)
	s.mockHTTPClient.EXPECT().Generate(gomock.Any(), tasks[1]).Return(generated, nil)

	s.mockService.EXPECT().
		ApplyGenerated(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, updates []service.ApplyGeneratedArgs) {
			s.Require().Len(updates, 2)

			var foundFirst, foundSecond bool
			for _, update := range updates {
				if update.JobID == 1 {
					s.NoError(update.Error) //nolint:testifylint
					s.Equal(tasks[0].CourseID, update.CourseID)
					s.Len(update.Questions, 1)
					foundFirst = true
				}
				if update.JobID == 2 {
					s.NoError(update.Error) //nolint:testifylint
					foundSecond = true
				}
			}
			s.True(foundFirst)
			s.True(foundSecond)
		}).
		Return(nil)

	ctx, cancel := context.WithTimeout(s.T().Context(), time.Second)
	defer cancel()
	err := s.processor.process(ctx)
	s.NoError(err)
}

// TestProcess_GeneratorError Ошибка генератора доезжает до сервисного слоя как неудача
// задачи, а не роняет итерацию.
func (s *ProcessorTestSuite) TestProcess_GeneratorError() {
	tasks := []service.ProvisionTask{
		{JobID: 1, CourseID: uuid.New(), Title: "Distributed Systems"},
	}

	s.mockService.EXPECT().
		TasksForProvisioning(gomock.Any(), s.processor.limitPerIteration).
		Return(tasks, nil)

	s.mockHTTPClient.EXPECT().Generate(gomock.Any(), tasks[0]).
		Return(nil, NewStatusCodeError(500))

	s.mockService.EXPECT().
		ApplyGenerated(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, updates []service.ApplyGeneratedArgs) {
			s.Require().Len(updates, 1)
			s.Error(updates[0].Error) //nolint:testifylint
			s.Equal(int64(1), updates[0].JobID)
		}).
		Return(nil)

	ctx, cancel := context.WithTimeout(s.T().Context(), time.Second)
	defer cancel()
	err := s.processor.process(ctx)
	s.NoError(err)
}
