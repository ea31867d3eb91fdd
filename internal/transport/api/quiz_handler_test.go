package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/logger"
	"github.com/fsdevblog/course-points/internal/service"
	"github.com/fsdevblog/course-points/internal/transport/api/mocks"
	"github.com/fsdevblog/course-points/internal/transport/api/testutils"
	"github.com/fsdevblog/course-points/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
)

type QuizHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockQuizService *mocks.MockQuizServicer
	jwtSecret       []byte
	userID          uuid.UUID
	userToken       string
}

func TestQuizHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuizHandlerTestSuite))
}

func (s *QuizHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockQuizService = mocks.NewMockQuizServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.userID = uuid.New()

	var tokenErr error
	s.userToken, tokenErr = tokens.GenerateUserJWT(s.userID, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		QuizService:  s.mockQuizService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *QuizHandlerTestSuite) TestQuestions() {
	courseID := uuid.New()
	questions := []domain.TestQuestion{
		{
			ID:            uuid.New(),
			CourseID:      courseID,
			Question:      "What is a quorum?",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: 2,
			Marks:         5,
		},
	}

	s.mockQuizService.EXPECT().
		QuestionsForAttempt(gomock.Any(), s.userID, courseID).
		Return(questions, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + "/courses/" + courseID.String() + "/test",
	}, testutils.WithBearerToken(s.userToken))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// правильный ответ не должен утекать в выдачу.
	rawBody := new(bytes.Buffer)
	_, readErr := rawBody.ReadFrom(resp.Body)
	s.Require().NoError(readErr)
	s.NotContains(rawBody.String(), "correct")

	var body []QuestionResponse
	s.Require().NoError(json.Unmarshal(rawBody.Bytes(), &body))
	s.Require().Len(body, 1)
	s.Equal(questions[0].ID, body[0].ID)
	s.Equal(questions[0].Options, body[0].Options)
}

func (s *QuizHandlerTestSuite) TestQuestions_NotOwned() {
	courseID := uuid.New()

	s.mockQuizService.EXPECT().
		QuestionsForAttempt(gomock.Any(), s.userID, courseID).
		Return(nil, domain.ErrCourseNotOwned)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + "/courses/" + courseID.String() + "/test",
	}, testutils.WithBearerToken(s.userToken))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *QuizHandlerTestSuite) TestSubmit() {
	courseID := uuid.New()
	questionID := uuid.New()

	s.mockQuizService.EXPECT().
		SubmitAttempt(gomock.Any(), s.userID, courseID, []service.AttemptAnswer{
			{QuestionID: questionID, Answer: 2},
		}).
		Return(&domain.TestResult{
			ID:       uuid.New(),
			UserID:   s.userID,
			CourseID: courseID,
			Score:    5,
			MaxScore: 5,
		}, nil)

	payload := fmt.Sprintf(`{"answers":[{"question_id":%q,"answer":2}]}`, questionID)
	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + "/courses/" + courseID.String() + "/test",
		Body:   bytes.NewBufferString(payload),
	}, testutils.WithBearerToken(s.userToken), testutils.WithHeader("Content-Type", "application/json"))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var body TestResultResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(int32(5), body.Score)
	s.Equal(int32(5), body.MaxScore)
}

func (s *QuizHandlerTestSuite) TestSubmit_AnswerOutOfRange() {
	courseID := uuid.New()

	payload := fmt.Sprintf(`{"answers":[{"question_id":%q,"answer":7}]}`, uuid.New())
	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + "/courses/" + courseID.String() + "/test",
		Body:   bytes.NewBufferString(payload),
	}, testutils.WithBearerToken(s.userToken), testutils.WithHeader("Content-Type", "application/json"))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *QuizHandlerTestSuite) TestResults() {
	results := []domain.TestResult{
		{ID: uuid.New(), UserID: s.userID, CourseID: uuid.New(), Score: 85, MaxScore: 100},
	}

	s.mockQuizService.EXPECT().
		ResultsByUser(gomock.Any(), s.userID).
		Return(results, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + TestResultsRoute,
	}, testutils.WithBearerToken(s.userToken))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body []TestResultResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().Len(body, 1)
	s.Equal(int32(85), body[0].Score)
}
