// Package jwtauth resolves request actors from HS256 JSON Web Tokens carrying
// the user id and the admin flag.
package jwtauth

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/dgrijalva/jwt-go"
)

// Claims is the token payload.
type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// Resolver implements ports.ActorResolver. Tokens are minted by the auth
// service sharing the secret; this service only verifies them.
type Resolver struct {
	secret []byte
}

func NewResolver(secret string) (*Resolver, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	return &Resolver{secret: []byte(secret)}, nil
}

// Resolve verifies the signature and expiry of token and builds the actor.
func (r *Resolver) Resolve(_ context.Context, token string) (actor.Actor, error) {
	if token == "" {
		return actor.Actor{}, fmt.Errorf("%w: no token", ports.ErrUnauthenticated)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %v", ports.ErrUnauthenticated, err)
	}
	if !parsed.Valid {
		return actor.Actor{}, fmt.Errorf("%w: invalid token", ports.ErrUnauthenticated)
	}

	userID, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return actor.Actor{}, errors.Join(ports.ErrUnauthenticated, err)
	}

	return actor.NewActor(userID, claims.IsAdmin)
}
