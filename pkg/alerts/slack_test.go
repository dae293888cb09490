package alerts_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockguard-io/stockguard/pkg/alerts"
	"github.com/stockguard-io/stockguard/pkg/model"
)

func TestSlackNotifier_Send(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "#inventory")
	err := n.Send(context.Background(), testNotification())
	require.NoError(t, err)

	var payload struct {
		Channel     string `json:"channel"`
		Attachments []struct {
			Color string `json:"color"`
			Title string `json:"title"`
		} `json:"attachments"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "#inventory", payload.Channel)
	require.Len(t, payload.Attachments, 1)
	assert.Equal(t, "#ff9900", payload.Attachments[0].Color)
	assert.Contains(t, payload.Attachments[0].Title, "A1")
}

func TestSlackNotifier_ColorByCategory(t *testing.T) {
	cases := []struct {
		category model.AlertCategory
		color    string
	}{
		{model.AlertStockZero, "#cc0000"},
		{model.AlertStockLow, "#ff9900"},
		{model.AlertExpirySoon, "#ffcc00"},
	}

	for _, tc := range cases {
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))

		notification := testNotification()
		notification.Category = tc.category

		n := alerts.NewSlackNotifier(server.URL, "")
		require.NoError(t, n.Send(context.Background(), notification))
		server.Close()

		var payload struct {
			Attachments []struct {
				Color string `json:"color"`
			} `json:"attachments"`
		}
		require.NoError(t, json.Unmarshal(gotBody, &payload))
		require.Len(t, payload.Attachments, 1)
		assert.Equal(t, tc.color, payload.Attachments[0].Color, "category %s", tc.category)
	}
}

func TestSlackNotifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "")
	err := n.Send(context.Background(), testNotification())
	assert.Error(t, err)
}

func TestSlackNotifier_Name(t *testing.T) {
	n := alerts.NewSlackNotifier("http://example.test", "")
	assert.Equal(t, "slack", n.Name())
}
