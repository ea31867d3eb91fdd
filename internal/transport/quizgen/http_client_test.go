package quizgen

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/course-points/internal/service"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *ClientTestSuite) TestGenerate() {
	task := service.ProvisionTask{
		JobID:       1,
		CourseID:    uuid.New(),
		Title:       "Distributed Systems",
		Description: "Consensus, replication, failure modes",
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal(RouteGenerate, r.URL.Path)

		var req generateRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req)) //nolint:testifylint
		s.Equal(task.CourseID.String(), req.CourseID)
		s.Equal(task.Title, req.Title)

		w.Header().Set("Content-Type", "application/json")
		s.NoError(json.NewEncoder(w).Encode(generateResponse{
			Questions: []generatedQuestion{
				{Question: "What is a quorum?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 2},
			},
		}))
	}))

	client := NewHTTPClient(s.server.URL)
	questions, err := client.Generate(s.T().Context(), task)
	s.Require().NoError(err)
	s.Require().Len(questions, 1)
	s.Equal("What is a quorum?", questions[0].Question)
	s.Equal(int16(2), questions[0].CorrectAnswer)
}

func (s *ClientTestSuite) TestGenerate_BadStatus() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	client := NewHTTPClient(s.server.URL)
	questions, err := client.Generate(s.T().Context(), service.ProvisionTask{JobID: 1})
	s.Require().Error(err)

	var statusErr *StatusCodeError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusServiceUnavailable, statusErr.Code)
	s.Nil(questions)
}
