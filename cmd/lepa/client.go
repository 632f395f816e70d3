package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"lepa/internal/api"
	"lepa/internal/archive"
	"lepa/internal/blobs"
)

// apiClient talks to the daemon's HTTP API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(address, token string) *apiClient {
	base := strings.TrimSpace(address)
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &apiClient{
		baseURL: strings.TrimRight(base, "/"),
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) Session() (api.SessionResponse, error) {
	var out api.SessionResponse
	err := c.do(http.MethodGet, "/api/session", nil, &out)
	return out, err
}

func (c *apiClient) Authorize(key string) (api.SessionResponse, error) {
	var out api.SessionResponse
	err := c.do(http.MethodPost, "/api/session", api.AuthorizeRequest{Key: key}, &out)
	return out, err
}

func (c *apiClient) Deauthorize() error {
	return c.do(http.MethodDelete, "/api/session", nil, nil)
}

func (c *apiClient) Recordings() ([]archive.Recording, error) {
	var out api.RecordingListResponse
	if err := c.do(http.MethodGet, "/api/recordings", nil, &out); err != nil {
		return nil, err
	}
	return out.Recordings, nil
}

func (c *apiClient) CreateRecording(recording archive.Recording) (string, error) {
	var out api.CreateResponse
	if err := c.do(http.MethodPost, "/api/recordings", recording, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *apiClient) DeleteRecording(id string) error {
	return c.do(http.MethodDelete, "/api/recordings/"+url.PathEscape(id), nil, nil)
}

func (c *apiClient) Stories() ([]archive.Story, error) {
	var out api.StoryListResponse
	if err := c.do(http.MethodGet, "/api/stories", nil, &out); err != nil {
		return nil, err
	}
	return out.Stories, nil
}

func (c *apiClient) CreateStory(story archive.Story) (string, error) {
	var out api.CreateResponse
	if err := c.do(http.MethodPost, "/api/stories", story, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *apiClient) DeleteStory(id string) error {
	return c.do(http.MethodDelete, "/api/stories/"+url.PathEscape(id), nil, nil)
}

// Upload pushes raw file bytes and returns the durable blob URL.
func (c *apiClient) Upload(folder blobs.Folder, filename string, data []byte) (string, error) {
	target := fmt.Sprintf("%s/api/blobs?folder=%s&filename=%s",
		c.baseURL, url.QueryEscape(string(folder)), url.QueryEscape(filename))
	req, err := http.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	c.setAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", wrapDialError(err, c.baseURL)
	}
	defer resp.Body.Close()

	var out api.UploadResponse
	if err := decodeResponse(resp, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *apiClient) Play(id string) (api.PlaybackResponse, error) {
	var out api.PlaybackResponse
	err := c.do(http.MethodPost, "/api/playback", api.PlaybackRequest{ID: id}, &out)
	return out, err
}

func (c *apiClient) TogglePlayback() (api.PlaybackResponse, error) {
	var out api.PlaybackResponse
	err := c.do(http.MethodPost, "/api/playback/toggle", nil, &out)
	return out, err
}

func (c *apiClient) StopPlayback() (api.PlaybackResponse, error) {
	var out api.PlaybackResponse
	err := c.do(http.MethodDelete, "/api/playback", nil, &out)
	return out, err
}

func (c *apiClient) Playback() (api.PlaybackResponse, error) {
	var out api.PlaybackResponse
	err := c.do(http.MethodGet, "/api/playback", nil, &out)
	return out, err
}

func (c *apiClient) Status() (api.StatusResponse, error) {
	var out api.StatusResponse
	err := c.do(http.MethodGet, "/api/status", nil, &out)
	return out, err
}

func (c *apiClient) do(method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapDialError(err, c.baseURL)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (c *apiClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr api.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return errors.New(apiErr.Error)
		}
		return fmt.Errorf("daemon returned %d", resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func wrapDialError(err error, server string) error {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("connect to daemon at %s: connection refused; start the daemon with `lepad`", server)
	}
	return fmt.Errorf("connect to daemon: %w", err)
}
