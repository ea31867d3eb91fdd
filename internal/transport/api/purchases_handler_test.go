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

type PurchasesHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockPurchaseService *mocks.MockPurchaseServicer
	jwtSecret           []byte
	userID              uuid.UUID
	userToken           string
}

func TestPurchasesHandlerSuite(t *testing.T) {
	suite.Run(t, new(PurchasesHandlerTestSuite))
}

func (s *PurchasesHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockPurchaseService = mocks.NewMockPurchaseServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.userID = uuid.New()

	var tokenErr error
	s.userToken, tokenErr = tokens.GenerateUserJWT(s.userID, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.router = New(RouterArgs{
		Logger:          logger.New(os.Stdout),
		PurchaseService: s.mockPurchaseService,
		JWTSecretKey:    s.jwtSecret,
	})
}

func (s *PurchasesHandlerTestSuite) TestCreate() {
	courseID := uuid.New()
	ownedCourseID := uuid.New()
	poorCourseID := uuid.New()

	s.mockPurchaseService.EXPECT().
		Purchase(gomock.Any(), s.userID, courseID).
		Return(&service.PurchaseResult{
			Purchase: &domain.Purchase{
				ID:          uuid.New(),
				CreatedAt:   time.Now(),
				UserID:      s.userID,
				CourseID:    courseID,
				PointsSpent: 500,
			},
			Balance: 200,
		}, nil)
	s.mockPurchaseService.EXPECT().
		Purchase(gomock.Any(), s.userID, ownedCourseID).
		Return(nil, domain.NewAlreadyOwnedError(&domain.Purchase{UserID: s.userID, CourseID: ownedCourseID}))
	s.mockPurchaseService.EXPECT().
		Purchase(gomock.Any(), s.userID, poorCourseID).
		Return(nil, domain.ErrNotEnoughPoints)

	cases := []struct {
		name       string
		body       string
		token      string
		wantStatus int
	}{
		{
			name:       "success",
			body:       fmt.Sprintf(`{"course_id":%q}`, courseID),
			token:      s.userToken,
			wantStatus: http.StatusCreated,
		}, {
			name:       "already owned",
			body:       fmt.Sprintf(`{"course_id":%q}`, ownedCourseID),
			token:      s.userToken,
			wantStatus: http.StatusConflict,
		}, {
			name:       "not enough points",
			body:       fmt.Sprintf(`{"course_id":%q}`, poorCourseID),
			token:      s.userToken,
			wantStatus: http.StatusPaymentRequired,
		}, {
			name:       "malformed uuid",
			body:       `{"course_id":"not-a-uuid"}`,
			token:      s.userToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "missing body",
			body:       `{}`,
			token:      s.userToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "unauthorized",
			body:       fmt.Sprintf(`{"course_id":%q}`, courseID),
			token:      "",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			opts := []func(*testutils.RequestOptions){
				testutils.WithHeader("Content-Type", "application/json"),
			}
			if t.token != "" {
				opts = append(opts, testutils.WithBearerToken(t.token))
			}

			resp, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + PurchasesRoute,
				Body:   bytes.NewBufferString(t.body),
			}, opts...)
			s.Require().NoError(err)
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

func (s *PurchasesHandlerTestSuite) TestCreate_Response() {
	courseID := uuid.New()

	s.mockPurchaseService.EXPECT().
		Purchase(gomock.Any(), s.userID, courseID).
		Return(&service.PurchaseResult{
			Purchase: &domain.Purchase{
				ID:          uuid.New(),
				UserID:      s.userID,
				CourseID:    courseID,
				PointsSpent: 500,
			},
			Balance: 200,
		}, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + PurchasesRoute,
		Body:   bytes.NewBufferString(fmt.Sprintf(`{"course_id":%q}`, courseID)),
	}, testutils.WithBearerToken(s.userToken), testutils.WithHeader("Content-Type", "application/json"))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var body PurchaseResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(courseID, body.CourseID)
	s.Equal(int64(500), body.PointsSpent)
	s.Equal(int64(200), body.Balance)
}

func (s *PurchasesHandlerTestSuite) TestIndex() {
	courses := []domain.Course{
		{ID: uuid.New(), Title: "Distributed Systems", PointsPrice: 500},
		{ID: uuid.New(), Title: "Compilers", PointsPrice: 300},
	}

	s.mockPurchaseService.EXPECT().
		PurchasedCourses(gomock.Any(), s.userID).
		Return(courses, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + PurchasesRoute,
	}, testutils.WithBearerToken(s.userToken))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body []CourseResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().Len(body, 2)
	s.Equal(courses[0].Title, body[0].Title)
}

func (s *PurchasesHandlerTestSuite) TestCourse_NotFound() {
	courseID := uuid.New()

	s.mockPurchaseService.EXPECT().
		CourseByID(gomock.Any(), courseID).
		Return(nil, domain.ErrRecordNotFound)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + "/courses/" + courseID.String(),
	}, testutils.WithBearerToken(s.userToken))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusNotFound, resp.StatusCode)
}
