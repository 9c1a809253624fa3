package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewaySMSServiceSend(t *testing.T) {
	var got smsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sms := NewGatewaySMSService(srv.URL, "key", "Dukkan")
	require.NoError(t, sms.Send(context.Background(), "07700000001", "code 123456"))
	assert.Equal(t, "07700000001", got.To)
	assert.Equal(t, "Dukkan", got.From)
}

func TestGatewaySMSServiceRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad number", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewGatewaySMSService(srv.URL, "key", "Dukkan").Send(context.Background(), "x", "y")
	assert.ErrorContains(t, err, "400")
}
