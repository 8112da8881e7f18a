// Package csrf emite y verifica tokens anti-CSRF atados a la sesión.
//
// El token es HMAC-SHA256(clave, sessionID) en base64url, por lo que no requiere
// almacenamiento: solo quien conoce la clave puede emitir el token de una sesión, y un
// token emitido para otra sesión no verifica.
package csrf

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// ErrInvalidToken token ausente o que no corresponde a la sesión.
var ErrInvalidToken = errors.New("csrf: token inválido")

const keyInfo = "inventario-core csrf v1"

// Manager emite y verifica tokens.
type Manager struct {
	key []byte
}

// New deriva la clave HMAC a partir de un secreto (normalmente el de JWT) con HKDF,
// de modo que el token CSRF nunca usa la misma clave que la firma de sesión.
func New(secret string) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("csrf: secret vacío")
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, err
	}
	return &Manager{key: key}, nil
}

// Issue devuelve el token de la sesión.
func (m *Manager) Issue(sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidToken
	}
	return base64.RawURLEncoding.EncodeToString(m.sign(sessionID)), nil
}

// Verify compara en tiempo constante el token recibido con el de la sesión.
func (m *Manager) Verify(sessionID, token string) error {
	if sessionID == "" || token == "" {
		return ErrInvalidToken
	}
	got, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ErrInvalidToken
	}
	if !hmac.Equal(got, m.sign(sessionID)) {
		return ErrInvalidToken
	}
	return nil
}

func (m *Manager) sign(sessionID string) []byte {
	mac := hmac.New(sha256.New, m.key)
	mac.Write([]byte(sessionID))
	return mac.Sum(nil)
}
