package model

import "time"

// LocalSession maps a browser cookie to the credential token pair issued by
// the Bloom API. The refresh token is sealed at rest; the struct always
// carries it in the clear.
type LocalSession struct {
	ID           int64     `json:"id"`
	Token        string    `json:"token"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
