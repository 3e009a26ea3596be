package models

// TokenPair is issued on login: a short-lived access token for API calls
// and a long-lived refresh token used solely to mint new access tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
