package pasetotoken

import (
	"strings"

	paseto "aidanwoods.dev/go-paseto"

	"github.com/polijecare/polijecare_web/config"
)

type Mode string

const (
	ModeLocal  Mode = "local"  // v4.local, encrypted
	ModePublic Mode = "public" // v4.public, signed
)

type Keys struct {
	Mode      Mode
	Symmetric *paseto.V4SymmetricKey
	Secret    *paseto.V4AsymmetricSecretKey
	Public    *paseto.V4AsymmetricPublicKey
}

// LoadKeys reads keys from the paseto config section. Public mode accepts
// a secret key (public derived), a public key (verify only) or both.
func LoadKeys(p config.PasetoConfig) (Keys, error) {
	switch Mode(p.Mode) {
	case ModeLocal, "":
		h := strings.TrimSpace(p.LocalKeyHex)
		if h == "" {
			return Keys{}, ErrConfig{Msg: "local mode requires local_key_hex"}
		}
		k, err := paseto.V4SymmetricKeyFromHex(h)
		if err != nil {
			return Keys{}, ErrConfig{Msg: "invalid local_key_hex: " + err.Error()}
		}
		return Keys{Mode: ModeLocal, Symmetric: &k}, nil

	case ModePublic:
		out := Keys{Mode: ModePublic}
		if h := strings.TrimSpace(p.SecretKeyHex); h != "" {
			sk, err := paseto.NewV4AsymmetricSecretKeyFromHex(h)
			if err != nil {
				return Keys{}, ErrConfig{Msg: "invalid secret_key_hex: " + err.Error()}
			}
			pk := sk.Public()
			out.Secret, out.Public = &sk, &pk
		}
		if h := strings.TrimSpace(p.PublicKeyHex); h != "" {
			pk, err := paseto.NewV4AsymmetricPublicKeyFromHex(h)
			if err != nil {
				return Keys{}, ErrConfig{Msg: "invalid public_key_hex: " + err.Error()}
			}
			out.Public = &pk
		}
		if out.Public == nil {
			return Keys{}, ErrConfig{Msg: "public mode requires secret_key_hex and/or public_key_hex"}
		}
		return out, nil
	}
	return Keys{}, ErrConfig{Msg: "unknown mode " + p.Mode + " (use local|public)"}
}

// NewLocalKeys generates a random symmetric key. Tokens issued with it do
// not survive a restart.
func NewLocalKeys() Keys {
	k := paseto.NewV4SymmetricKey()
	return Keys{Mode: ModeLocal, Symmetric: &k}
}
