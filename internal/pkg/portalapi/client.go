package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// MarkResult is the service's answer to a mark-attendance call.
type MarkResult struct {
	Message   string   `json:"message"`
	WorkHours *float64 `json:"work_hours,omitempty"`
	Warning   string   `json:"warning,omitempty"`
}

// ServiceError carries the human-readable detail the service returned with a
// non-2xx status. The detail is passed through for display verbatim.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("attendance service error (%d): %s", e.StatusCode, e.Detail)
}

// Client talks to the attendance service's kiosk-facing endpoints.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// MarkAttendance submits a live image and coordinates as multipart form data.
func (c *Client) MarkAttendance(ctx context.Context, image []byte, latitude, longitude float64) (*MarkResult, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("live_image", "capture.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	if err := writer.WriteField("latitude", strconv.FormatFloat(latitude, 'f', -1, 64)); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.WriteField("longitude", strconv.FormatFloat(longitude, 'f', -1, 64)); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/attendance/mark", body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("attendance service unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(raw),
		}
	}

	// The service wraps payloads in a {success, message, data} envelope.
	var envelope struct {
		Message string     `json:"message"`
		Data    MarkResult `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := envelope.Data
	if result.Message == "" {
		result.Message = envelope.Message
	}

	return &result, nil
}

// errorDetail pulls the service's message out of an error envelope, falling
// back to the raw text.
func errorDetail(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != nil && body.Error.Message != "" {
			return body.Error.Message
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return string(raw)
}
