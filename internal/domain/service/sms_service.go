package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dukkan/pkg/logger"
)

type SMSService interface {
	Send(ctx context.Context, phone, message string) error
}

// GatewaySMSService posts messages to a JSON SMS gateway using a bearer key.
type GatewaySMSService struct {
	apiURL string
	apiKey string
	sender string
	client *http.Client
}

func NewGatewaySMSService(apiURL, apiKey, sender string) *GatewaySMSService {
	return &GatewaySMSService{
		apiURL: apiURL,
		apiKey: apiKey,
		sender: sender,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type smsRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

func (s *GatewaySMSService) Send(ctx context.Context, phone, message string) error {
	jsonData, err := json.Marshal(smsRequest{To: phone, From: s.sender, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sms gateway error %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// LogSMSService is used when no gateway is configured. Codes end up in the log, which is
// only acceptable in development.
type LogSMSService struct{}

func (LogSMSService) Send(ctx context.Context, phone, message string) error {
	logger.Warn("SMS gateway not configured; message for %s: %s", phone, message)
	return nil
}
