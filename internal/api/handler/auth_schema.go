package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for operations that confirm with a sentence
// rather than returning a resource.
type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// accessTokenResponse carries the freshly minted access token. The refresh
// token travels only in the Set-Cookie header, never here.
type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
