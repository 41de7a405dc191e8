package hubuum

// Credentials carries a username/password pair for the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is a bearer token as issued by the auth endpoint.
type Token struct {
	Token string `json:"token"`
}
