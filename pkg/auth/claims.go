package auth

import (
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	ActorID uuid.UUID
	Role    enums.Role
	Name    string
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients.
// ActorID is the vendor or supplier ID depending on Role.
type AccessTokenClaims struct {
	ActorID uuid.UUID  `json:"actor_id"`
	Role    enums.Role `json:"role"`
	Name    string     `json:"name,omitempty"`
	jwt.RegisteredClaims
}
