package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// MailerConfig holds mail delivery service configuration
type MailerConfig struct {
	BaseURL    string
	APIKey     string
	SenderName string
}

// MailerService handles mail delivery service API interactions
type MailerService struct {
	config     *MailerConfig
	httpClient *http.Client
}

var (
	mailerService *MailerService
	mailerOnce    sync.Once
)

// GetMailerService returns singleton instance of MailerService
func GetMailerService() *MailerService {
	mailerOnce.Do(func() {
		// Get config dari environment variables
		baseURL := os.Getenv("MAILER_BASE_URL")
		apiKey := os.Getenv("MAILER_API_KEY")
		senderName := os.Getenv("MAILER_SENDER_NAME")

		if baseURL == "" {
			fmt.Println("WARNING: MAILER_BASE_URL is empty, using local default")
			baseURL = "http://localhost:8025"
		}

		if senderName == "" {
			senderName = "Portal Lowongan"
		}

		mailerService = &MailerService{
			config: &MailerConfig{
				BaseURL:    baseURL,
				APIKey:     apiKey,
				SenderName: senderName,
			},
			httpClient: &http.Client{
				Timeout: 30 * time.Second,
			},
		}
	})
	return mailerService
}

// NewMailerService creates a new instance of MailerService
func NewMailerService(config *MailerConfig) *MailerService {
	return &MailerService{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendDigest mengirim satu digest email lewat mail delivery service.
// Mengembalikan true kalau digest diterima untuk dikirim.
func (ms *MailerService) SendDigest(payload DigestPayload) (bool, error) {
	url := fmt.Sprintf("%s/v1/digest", ms.config.BaseURL)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return false, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if ms.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+ms.config.APIKey)
	}

	resp, err := ms.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("mailer API error: %s", string(body))
	}

	var digestResp struct {
		Accepted bool   `json:"accepted"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(body, &digestResp); err != nil {
		return false, fmt.Errorf("error unmarshaling response: %v", err)
	}

	return digestResp.Accepted, nil
}
