package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"sharayeh/internal/domain/conversion"
	sharedConfig "sharayeh/internal/shared/config"
	"sharayeh/internal/shared/logger"
)

const (
	defaultRequestTimeout = 120 * time.Second
	defaultAuthTimeout    = 15 * time.Second
	// Maximum response body size for metadata endpoints (1MB)
	maxMetadataResponseSize = 1 << 20
	// Maximum downloaded artifact size (200MB)
	maxArtifactSize = 200 << 20
)

// folderResponse is the working-storage listing shape.
type folderResponse struct {
	Value []struct {
		Name string `json:"name"`
	} `json:"value"`
}

// slidesListResponse is the slide enumeration shape.
type slidesListResponse struct {
	SlideList []struct {
		Href string `json:"href"`
	} `json:"slideList"`
}

// transitionRequest is the per-slide mutation payload.
type transitionRequest struct {
	SlideShowTransition slideShowTransition `json:"slideShowTransition"`
}

type slideShowTransition struct {
	Type        string  `json:"type"`
	Duration    float64 `json:"duration"`
	MorphOption string  `json:"morphOption,omitempty"`
}

// Client talks to the remote slide-processing API. Tokens are obtained with
// the client-credentials grant and injected by the oauth2 transport; they are
// never logged. The client is immutable after construction and safe for
// concurrent use.
type Client struct {
	baseURL     string
	credentials *clientcredentials.Config
	authTimeout time.Duration
	logger      logger.Interface

	httpClient *http.Client
}

// NewClient creates a slide service client from configuration.
func NewClient(cfg *sharedConfig.SlidesConfig, logger logger.Interface) *Client {
	requestTimeout := defaultRequestTimeout
	if cfg.TimeoutSeconds > 0 {
		requestTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	authTimeout := defaultAuthTimeout
	if cfg.AuthTimeout > 0 {
		authTimeout = time.Duration(cfg.AuthTimeout) * time.Second
	}

	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	httpClient := credentials.Client(context.Background())
	httpClient.Timeout = requestTimeout

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		credentials: credentials,
		authTimeout: authTimeout,
		logger:      logger,
		httpClient:  httpClient,
	}
}

// Ensure Client implements SlideService
var _ conversion.SlideService = (*Client)(nil)

// Authenticate eagerly exchanges credentials for a token so that credential
// problems surface as a distinct failure before any upload happens. The
// oauth2 transport behind httpClient refreshes the token transparently for
// later calls; nothing on the client is mutated here.
func (c *Client) Authenticate(ctx context.Context) error {
	authCtx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()

	token, err := c.credentials.Token(authCtx)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}
	if !token.Valid() {
		return fmt.Errorf("token exchange returned an invalid token")
	}

	c.logger.Debugw("slide service authenticated", "token_expiry", token.Expiry)
	return nil
}

// UploadFile places bytes into working storage under name.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte) error {
	endpoint := c.baseURL + "/slides/storage/files/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxMetadataResponseSize))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	c.logger.Debugw("file uploaded to working storage", "name", name, "size", len(data))
	return nil
}

// ListFiles enumerates names at the working-storage root.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/slides/storage/folder", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxMetadataResponseSize))
		return nil, fmt.Errorf("list failed with status %d", resp.StatusCode)
	}

	var data folderResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataResponseSize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode folder listing: %w", err)
	}

	names := make([]string, 0, len(data.Value))
	for _, entry := range data.Value {
		names = append(names, entry.Name)
	}
	return names, nil
}

// SlideCount returns the number of slides in the uploaded artifact.
func (c *Client) SlideCount(ctx context.Context, name string) (int, error) {
	endpoint := c.baseURL + "/slides/" + url.PathEscape(name) + "/slides"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create slide count request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate slides: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxMetadataResponseSize))
		return 0, fmt.Errorf("slide enumeration failed with status %d", resp.StatusCode)
	}

	var data slidesListResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataResponseSize)).Decode(&data); err != nil {
		return 0, fmt.Errorf("failed to decode slide listing: %w", err)
	}

	return len(data.SlideList), nil
}

// ApplyTransition mutates the slide at the 1-based index in place.
func (c *Client) ApplyTransition(ctx context.Context, name string, slide int, transition conversion.Transition) error {
	endpoint := fmt.Sprintf("%s/slides/%s/slides/%d/transition", c.baseURL, url.PathEscape(name), slide)

	payload := transitionRequest{
		SlideShowTransition: slideShowTransition{
			Type:        transition.Type,
			Duration:    transition.Duration,
			MorphOption: transition.MorphOption,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode transition payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create transition request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to apply transition: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxMetadataResponseSize))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("transition failed with status %d", resp.StatusCode)
	}

	return nil
}

// DownloadFile retrieves the artifact bytes from working storage.
func (c *Client) DownloadFile(ctx context.Context, name string) ([]byte, error) {
	endpoint := c.baseURL + "/slides/storage/files/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxMetadataResponseSize))
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArtifactSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact body: %w", err)
	}

	c.logger.Debugw("file downloaded from working storage", "name", name, "size", len(data))
	return data, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
