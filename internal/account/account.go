package account

import "time"

const (
	// TokenTTL is the default lifetime of an access token.
	TokenTTL = time.Hour
	// MaxPasswordBytes is bcrypt's input limit. It counts bytes, not runes.
	MaxPasswordBytes = 72
)

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary is the public view of an account.
type Summary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (a Account) Summary() Summary {
	return Summary{ID: a.ID, Email: a.Email}
}

type Token struct {
	AccessToken string `json:"token"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds
}
