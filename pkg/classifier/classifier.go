// Package classifier is the client for the external waste image model.
//
// The model accepts POST multipart/form-data with the image under "file" and
// answers {"prediction": "<label>"}. Older deployments answer {"type": ...}.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"anoa.com/ecoinsight/pkg/apperror"
)

//go:generate mockgen -source=classifier.go -destination=mock/classifier.go -package=mock

type Classifier interface {
	// Classify returns the raw label reported by the model.
	Classify(ctx context.Context, image io.Reader, fileName string) (string, error)
}

const maxResponseBytes = 64 << 10

type httpClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(url string, timeout time.Duration) Classifier {
	return &httpClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type predictResponse struct {
	Prediction string `json:"prediction"`
	Type       string `json:"type"`
	Error      string `json:"error"`
}

func (c *httpClassifier) Classify(ctx context.Context, image io.Reader, fileName string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to build classifier request: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperror.Upstream("Failed to connect to ML service", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperror.Upstream("Failed to connect to ML service", err)
	}

	var out predictResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode != http.StatusOK {
		cause := fmt.Errorf("classifier returned status %d", resp.StatusCode)
		if decodeErr == nil && out.Error != "" {
			cause = fmt.Errorf("%w: %s", cause, out.Error)
		}
		return "", apperror.Upstream("ML service could not classify the image", cause)
	}
	if decodeErr != nil {
		return "", apperror.Upstream("ML service returned an invalid response",
			fmt.Errorf("failed to decode classifier response: %w", decodeErr))
	}

	label := strings.TrimSpace(out.Prediction)
	if label == "" {
		label = strings.TrimSpace(out.Type)
	}
	if label == "" {
		return "", apperror.Upstream("ML service returned no prediction", errors.New(string(raw)))
	}

	return label, nil
}
