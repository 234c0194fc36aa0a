package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the payload of the bearer tokens issued at login.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	UserTypeID   uint   `json:"user_type_id"`
	TokenVersion int    `json:"token_version"`
}
