package domain

// User is an account that can log in. Accounts only exist to mint
// caller contexts; the core serving path never touches them.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	SFWDefault   bool   `json:"sfw_default"`
}

// LoginRequest is the credentials payload for authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the minted token and the caller's visibility
// attributes.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *User         `json:"user"`
	Ctx   CallerContext `json:"context"`
}

// TokenClaims is the auth-adapter-agnostic claim set embedded in
// session tokens.
type TokenClaims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	SFW       bool   `json:"sfw"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}
