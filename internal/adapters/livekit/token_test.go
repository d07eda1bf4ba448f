package livekit

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeClaims(t *testing.T, token string) map[string]any {
	t.Helper()

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(raw, &claims))
	return claims
}

func TestMintTokenGrantsRoomJoin(t *testing.T) {
	token, err := MintToken(testCreds, ports.RoomOptions{
		Room:        "alexis-room",
		Identity:    "alexis",
		DisplayName: "Alexis",
		TokenTTL:    10 * time.Minute,
	})
	require.NoError(t, err)

	claims := decodeClaims(t, token)
	assert.Equal(t, "APIkey", claims["iss"])
	assert.Equal(t, "alexis", claims["sub"])
	assert.Equal(t, "Alexis", claims["name"])

	video, ok := claims["video"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, video["roomJoin"])
	assert.Equal(t, "alexis-room", video["room"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, float64(time.Now().Add(10*time.Minute).Unix()), exp, 60)
}

func TestMintTokenReturnsPreIssuedToken(t *testing.T) {
	token, err := MintToken(domain.Credentials{Token: "  pre-issued "}, ports.RoomOptions{})
	require.NoError(t, err)
	assert.Equal(t, "pre-issued", token)
}

func TestMintTokenReportsMissingFields(t *testing.T) {
	_, err := MintToken(domain.Credentials{APIKey: "k"}, ports.RoomOptions{Room: "r"})

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{domain.CredentialFieldAPISecret, "agent.identity"}, cfgErr.Fields)
}
