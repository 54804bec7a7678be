package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/form"
)

func TestExtractMessageOrder(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"detail":"d","message":"m","error":"e"}`, "d"},
		{`{"message":"m","error":"e"}`, "m"},
		{`{"error":"e"}`, "e"},
		{`{"detail":"","error":"e"}`, "e"},
		{`{"detail":["first","second"]}`, "first"},
		{`{"username":["taken"]}`, apiclient.DefaultErrorMessage},
		{`<html>bad gateway</html>`, apiclient.DefaultErrorMessage},
		{``, apiclient.DefaultErrorMessage},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, apiclient.ExtractMessage([]byte(tc.body)), tc.body)
	}

	require.Equal(t, "e", apiclient.ExtractMessageFrom([]byte(`{"detail":"d","error":"e"}`), "fallback", "error", "detail"))
	require.Equal(t, "fallback", apiclient.ExtractMessageFrom([]byte(`{}`), "fallback", "error"))
}

func TestKindForStatus(t *testing.T) {
	require.Equal(t, apiclient.KindAuthentication, apiclient.KindForStatus(401))
	require.Equal(t, apiclient.KindClientRequest, apiclient.KindForStatus(403))
	require.Equal(t, apiclient.KindClientRequest, apiclient.KindForStatus(499))
	require.Equal(t, apiclient.KindServer, apiclient.KindForStatus(500))
	require.Equal(t, apiclient.KindNetwork, apiclient.KindForStatus(302))
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "Error: bad", apiclient.UserMessage(&apiclient.APIError{Kind: apiclient.KindClientRequest, Message: "bad"}))
	require.Equal(t, apiclient.MsgServerError, apiclient.UserMessage(&apiclient.APIError{Kind: apiclient.KindServer}))
	require.Equal(t, apiclient.MsgNetworkError, apiclient.UserMessage(io.EOF))
}

func TestPageAcceptsEnvelopeAndArray(t *testing.T) {
	var page apiclient.Page[int]
	require.NoError(t, json.Unmarshal([]byte(`{"count":10,"next":"http://x/?page=2","previous":null,"results":[1,2]}`), &page))
	require.Equal(t, 10, page.Count)
	require.Equal(t, []int{1, 2}, page.Results)
	require.True(t, page.HasNext())

	require.NoError(t, json.Unmarshal([]byte(`[4,5,6]`), &page))
	require.Equal(t, 3, page.Count)
	require.Equal(t, []int{4, 5, 6}, page.Results)
	require.False(t, page.HasNext())
}

func TestTransportEncodesQueryJSONAndMultipart(t *testing.T) {
	type seen struct {
		method, query, contentType, auth string
		body                             []byte
		fields                           map[string]string
	}
	var got seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = seen{method: r.Method, query: r.URL.RawQuery, contentType: r.Header.Get("Content-Type"), auth: r.Header.Get("Authorization")}
		if strings.HasPrefix(got.contentType, "multipart/") {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			got.fields = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				got.fields[k] = v[0]
			}
			for k := range r.MultipartForm.File {
				got.fields[k] = "<file>"
			}
		} else {
			got.body, _ = io.ReadAll(r.Body)
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": 7})
	}))
	defer srv.Close()

	tr := apiclient.NewTransport(srv.URL)
	ctx := context.Background()

	var out struct {
		ID int `json:"id"`
	}
	err := tr.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/jobs/create/",
		Query:  url.Values{"page": {"2"}},
		Body:   map[string]any{"title": "Logo"},
		Token:  &oauth2.Token{AccessToken: "t1"},
	}, &out)
	require.NoError(t, err)
	require.Equal(t, 7, out.ID)
	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "page=2", got.query)
	require.Equal(t, "application/json", got.contentType)
	require.Equal(t, "Bearer t1", got.auth)
	require.JSONEq(t, `{"title":"Logo"}`, string(got.body))

	err = tr.Do(ctx, apiclient.Request{
		Method:    http.MethodPost,
		Path:      "/jobs/logo/apply/",
		Multipart: true,
		Body: map[string]any{
			"cover_letter": "hello",
			"cv":           form.File{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		},
	}, nil)
	require.NoError(t, err)
	require.Contains(t, got.contentType, "multipart/form-data")
	require.Equal(t, map[string]string{"cover_letter": "hello", "cv": "<file>"}, got.fields)
	require.Empty(t, got.auth)

	var raw json.RawMessage
	require.NoError(t, tr.Do(ctx, apiclient.Request{Path: "/echo/"}, &raw))
	require.JSONEq(t, `{"id":7}`, string(raw))
}
