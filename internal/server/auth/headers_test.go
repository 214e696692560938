package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc", want: "abc"},
		{name: "valid bearer with jwt-ish value", header: "Bearer eyJhb.eyJz.sig", want: "eyJhb.eyJz.sig"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Token abc", wantErr: true},
		{name: "api key scheme", header: "ApiKey abc", wantErr: true},
		{name: "lowercase prefix", header: "bearer abc", wantErr: true},
		{name: "prefix only", header: "Bearer ", wantErr: true},
		{name: "no space", header: "Bearerabc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			if tt.header != "" {
				headers.Set("Authorization", tt.header)
			}

			got, err := GetBearerToken(headers)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid api key", header: "ApiKey f271c81ff7084ee5b99a5091b42d486e", want: "f271c81ff7084ee5b99a5091b42d486e"},
		{name: "missing header", header: "", wantErr: true},
		{name: "bearer scheme", header: "Bearer abc", wantErr: true},
		{name: "prefix only", header: "ApiKey ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			if tt.header != "" {
				headers.Set("Authorization", tt.header)
			}

			got, err := GetAPIKey(headers)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIKeysEqual(t *testing.T) {
	assert.True(t, APIKeysEqual("secret", "secret"))
	assert.False(t, APIKeysEqual("secret", "Secret"))
	assert.False(t, APIKeysEqual("secret", "secret "))
	assert.False(t, APIKeysEqual("", "secret"))
}
