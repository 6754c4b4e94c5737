package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordwise/internal/question"
)

var now = time.UnixMilli(1_700_000_000_000)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{HTTP: srv.Client(), BaseURL: srv.URL}
}

func settings() Settings {
	return Settings{APIKey: "k3y", SheetID: "sheet-123"}
}

func TestFetch_RequestShape(t *testing.T) {
	var gotPath, gotKey string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"range":"Sheet1!A2:F3","values":[["Grammar","MCQ","Q?","a, b","a"]]}`))
	})

	rows, err := c.Fetch(context.Background(), settings())
	require.NoError(t, err)
	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/Sheet1!A2:F", gotPath)
	assert.Equal(t, "k3y", gotKey)
	assert.Equal(t, [][]string{{"Grammar", "MCQ", "Q?", "a, b", "a"}}, rows)
}

func TestFetch_MissingSettings(t *testing.T) {
	c := NewClient()
	_, err := c.Fetch(context.Background(), Settings{SheetID: "x"})
	assert.ErrorIs(t, err, ErrMissingSettings)
	_, err = c.Fetch(context.Background(), Settings{APIKey: "x"})
	assert.ErrorIs(t, err, ErrMissingSettings)
}

func TestFetch_APIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "permission denied",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrPermissionDenied) },
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrSheetNotFound) },
		},
		{
			name:   "other API error",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"Unable to parse range: Nope!A1","status":"INVALID_ARGUMENT"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, 400, apiErr.HTTPStatus)
				assert.Equal(t, "INVALID_ARGUMENT", apiErr.Status)
				assert.Contains(t, apiErr.Message, "Unable to parse range")
			},
		},
		{
			name:   "non-JSON failure",
			status: http.StatusBadGateway,
			body:   `upstream down`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.Fetch(context.Background(), settings())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"Prepositions", "MCQ", "The cat is ___ the box.", "in, on ,under", "in", "Inside."},
		{"", "", "Choose: I ___ a student.", "am,is", "am"},
		{"Grammar", "TF", "The sun is cold.", "", "False"},
		{"Spelling", "spelling_correction", "Fix: freind", "", "friend"},
		{"Grammar", "MCQ", "", "a,b", "a"},
		{"Grammar", "MCQ", "No answer here"},
		{"Grammar", "MCQ", "Wrong answer", "a,b", "c"},
	}

	res, err := ParseRows(rows, now)
	require.NoError(t, err)
	require.Len(t, res.Questions, 4)

	first := res.Questions[0]
	assert.Equal(t, "cloud_1700000000000_0", first.ID)
	assert.Equal(t, []string{"in", "on", "under"}, first.Options)
	assert.Equal(t, "Inside.", first.Explanation)

	second := res.Questions[1]
	assert.Equal(t, UncategorizedCategory, second.Category)
	assert.Equal(t, question.KindMCQ, second.Kind)

	assert.Equal(t, []string{"True", "False"}, res.Questions[2].Options)
	assert.Empty(t, res.Questions[3].Options)

	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 4, res.Skipped[0].Row)
	assert.Equal(t, 5, res.Skipped[1].Row)
	assert.Equal(t, 6, res.Skipped[2].Row)
	assert.Contains(t, res.Skipped[2].Reason, "not one of the options")
}

func TestParseRows_Outcomes(t *testing.T) {
	_, err := ParseRows(nil, now)
	assert.ErrorIs(t, err, ErrNoData)

	res, err := ParseRows([][]string{{"Grammar", "MCQ"}}, now)
	assert.ErrorIs(t, err, ErrNoValidRows)
	require.NotNil(t, res)
	assert.Len(t, res.Skipped, 1)
}

func TestImport(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values":[]}`))
	})
	_, err := c.Import(context.Background(), settings(), now)
	assert.ErrorIs(t, err, ErrNoData)

	c = testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values":[["Articles","MCQ","I saw ___ owl.","a,an","an"]]}`))
	})
	res, err := c.Import(context.Background(), settings(), now)
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, "Articles", res.Questions[0].Category)
}
