package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// signer binds a session token to the server secret so forged or
// truncated cookie values are rejected before the store is consulted.
type signer struct {
	secret []byte
}

func (s signer) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return token + "." + hex.EncodeToString(mac.Sum(nil))
}

func (s signer) verify(value string) (string, bool) {
	token, sig, found := strings.Cut(value, ".")
	if !found || token == "" {
		return "", false
	}
	expected := s.sign(token)
	if !hmac.Equal([]byte(expected[len(token)+1:]), []byte(sig)) {
		return "", false
	}
	return token, true
}
