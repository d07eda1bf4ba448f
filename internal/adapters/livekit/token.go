package livekit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/livekit/protocol/auth"
)

const defaultTokenTTL = time.Hour

// MintToken signs a room join token for the agent identity. A pre-issued
// token in creds is returned unchanged.
func MintToken(creds domain.Credentials, opts ports.RoomOptions) (string, error) {
	if token := strings.TrimSpace(creds.Token); token != "" {
		return token, nil
	}

	var fields []string
	if strings.TrimSpace(creds.APIKey) == "" {
		fields = append(fields, domain.CredentialFieldAPIKey)
	}
	if strings.TrimSpace(creds.APISecret) == "" {
		fields = append(fields, domain.CredentialFieldAPISecret)
	}
	if strings.TrimSpace(opts.Room) == "" {
		fields = append(fields, "agent.room")
	}
	if strings.TrimSpace(opts.Identity) == "" {
		fields = append(fields, "agent.identity")
	}
	if len(fields) > 0 {
		return "", &domain.ConfigurationError{Fields: fields, Err: errors.New("cannot mint room token")}
	}

	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	token, err := auth.NewAccessToken(creds.APIKey, creds.APISecret).
		SetVideoGrant(&auth.VideoGrant{RoomJoin: true, Room: opts.Room}).
		SetIdentity(opts.Identity).
		SetName(opts.DisplayName).
		SetValidFor(ttl).
		ToJWT()
	if err != nil {
		return "", &domain.ConfigurationError{Err: fmt.Errorf("sign room token: %w", err)}
	}

	return token, nil
}
