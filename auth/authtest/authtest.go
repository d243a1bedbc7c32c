// Package authtest builds signed requests and an in-memory profile store for
// handler tests.
package authtest

import (
	"context"
	"net/http"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/auth"
)

const Secret = "test-secret"

type StaticProfiles map[string]auth.Profile

func (s StaticProfiles) GetProfile(_ context.Context, uid string) (*auth.Profile, error) {
	p, ok := s[uid]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return &p, nil
}

// Campus returns a profile set with one admin ("admin-1") and two students
// ("stud-1", "stud-2").
func Campus() StaticProfiles {
	return StaticProfiles{
		"admin-1": {UID: "admin-1", Name: "Canteen Admin", Email: "admin@campus.edu", Role: auth.RoleAdmin},
		"stud-1":  {UID: "stud-1", Name: "Asha", Email: "asha@campus.edu", Role: auth.RoleStudent},
		"stud-2":  {UID: "stud-2", Name: "Ravi", Email: "ravi@campus.edu", Role: auth.RoleStudent},
	}
}

func NewMiddleware(profiles StaticProfiles) *auth.Middleware {
	return auth.NewMiddleware(auth.NewVerifier(Secret), profiles)
}

// Authorize signs a token for uid and attaches it to req. An empty uid leaves
// the request anonymous.
func Authorize(req *http.Request, uid string) *http.Request {
	if uid == "" {
		return req
	}
	token, err := auth.NewVerifier(Secret).Issue(uid, uid+"@campus.edu", "", time.Hour)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
