package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaddleClientDisabledWithoutURL(t *testing.T) {
	assert.Nil(t, NewPaddleClient("", time.Second))
}

func TestPaddleClientExtractText(t *testing.T) {
	image := []byte("fake-png-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Images []string `json:"images"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Images, 1)
		assert.Equal(t, base64.StdEncoding.EncodeToString(image), body.Images[0])

		_, _ = w.Write([]byte(`{"results":[[{"text":"TOTAL","confidence":0.9},{"text":"$ 42.10","confidence":0.7}]]}`))
	}))
	defer srv.Close()

	c := NewPaddleClient(srv.URL, time.Second)
	text, conf, err := c.ExtractText(context.Background(), image)

	require.NoError(t, err)
	assert.Equal(t, "TOTAL\n$ 42.10\n", text)
	assert.InDelta(t, 80.0, conf, 0.001)
	assert.Equal(t, "paddleocr", c.Name())
}

func TestPaddleClientErrors(t *testing.T) {
	t.Run("non 200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, _, err := NewPaddleClient(srv.URL, time.Second).ExtractText(context.Background(), []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("empty result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[[]]}`))
		}))
		defer srv.Close()

		_, _, err := NewPaddleClient(srv.URL, time.Second).ExtractText(context.Background(), []byte("x"))
		assert.Error(t, err)
	})
}
