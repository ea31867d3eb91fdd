package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fsdevblog/course-points/internal/service"
)

const RouteGenerate = "/api/generate"

type generateRequest struct {
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int16    `json:"correct_answer"`
}

type generateResponse struct {
	Questions []generatedQuestion `json:"questions"`
}

// HTTPClient является реализацией интерфейса Client для HTTP запросов к генератору вопросов.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) HTTPClient {
	return HTTPClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Generate запрашивает у генератора банк вопросов по названию и описанию курса.
// В случае не-200 ответа возвращает *StatusCodeError.
//
//nolint:nonamedreturns
func (c HTTPClient) Generate(
	ctx context.Context,
	task service.ProvisionTask,
) (questions []service.GeneratedQuestion, err error) {
	payload, marshalErr := json.Marshal(generateRequest{
		CourseID:    task.CourseID.String(),
		Title:       task.Title,
		Description: task.Description,
	})
	if marshalErr != nil {
		return nil, fmt.Errorf("marshal request: %s", marshalErr.Error())
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RouteGenerate, bytes.NewReader(payload))
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, NewStatusCodeError(resp.StatusCode)
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("read response: %s", readErr.Error())
	}

	var parsed generateResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
		return nil, fmt.Errorf("parse response: %s", jsonErr.Error())
	}

	questions = make([]service.GeneratedQuestion, len(parsed.Questions))
	for i, q := range parsed.Questions {
		questions[i] = service.GeneratedQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return questions, nil
}
