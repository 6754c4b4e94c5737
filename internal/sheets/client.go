// Package sheets imports the question bank from a public Google Sheet
// through the Sheets v4 values API.
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Sheets API endpoint.
	DefaultBaseURL = "https://sheets.googleapis.com"

	// DefaultRange skips the header row and reads columns A to F.
	DefaultRange = "Sheet1!A2:F"

	maxBodyBytes = 8 << 20
)

// Settings identify the sheet to read.
type Settings struct {
	APIKey  string
	SheetID string
	Range   string
}

// Client fetches sheet values. The zero value is not usable; use NewClient.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	// Limiter, when set, throttles requests.
	Limiter *rate.Limiter
}

// NewClient returns a Client with a 30s timeout that allows one request
// every two seconds.
func NewClient() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: DefaultBaseURL,
		Limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Fetch returns the raw cell values of the configured range. Short rows
// are returned as-is.
func (c *Client) Fetch(ctx context.Context, s Settings) ([][]string, error) {
	if strings.TrimSpace(s.APIKey) == "" || strings.TrimSpace(s.SheetID) == "" {
		return nil, ErrMissingSettings
	}
	rng := s.Range
	if strings.TrimSpace(rng) == "" {
		rng = DefaultRange
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		strings.TrimRight(c.BaseURL, "/"),
		url.PathEscape(strings.TrimSpace(s.SheetID)),
		url.PathEscape(rng),
		url.QueryEscape(strings.TrimSpace(s.APIKey)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build sheets request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read sheet response: %w", err)
	}

	if errObj := gjson.GetBytes(body, "error"); errObj.Exists() {
		return nil, mapAPIError(resp.StatusCode, errObj)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{HTTPStatus: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var rows [][]string
	gjson.GetBytes(body, "values").ForEach(func(_, row gjson.Result) bool {
		var cells []string
		row.ForEach(func(_, cell gjson.Result) bool {
			cells = append(cells, cell.String())
			return true
		})
		rows = append(rows, cells)
		return true
	})
	return rows, nil
}

func mapAPIError(httpStatus int, errObj gjson.Result) error {
	switch status := errObj.Get("status").String(); status {
	case "PERMISSION_DENIED":
		return ErrPermissionDenied
	case "NOT_FOUND":
		return ErrSheetNotFound
	default:
		code := int(errObj.Get("code").Int())
		if code == 0 {
			code = httpStatus
		}
		return &APIError{HTTPStatus: code, Status: status, Message: errObj.Get("message").String()}
	}
}

// Import fetches the sheet and converts its rows into questions.
func (c *Client) Import(ctx context.Context, s Settings, now time.Time) (*Result, error) {
	rows, err := c.Fetch(ctx, s)
	if err != nil {
		return nil, err
	}
	return ParseRows(rows, now)
}
