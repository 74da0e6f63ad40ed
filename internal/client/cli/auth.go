package cli

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bankd/internal/client/api"
)

// Signup collects profile fields interactively and registers a new user.
// On success the session cookie is already in the jar.
func (a *App) Signup(ctx context.Context) {
	req := api.SignupRequest{}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Email", &req.Email},
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Phone number", &req.PhoneNumber},
		{"Date of birth (YYYY-MM-DD)", &req.DateOfBirth},
		{"SSN", &req.SSN},
		{"Address", &req.Address},
		{"City", &req.City},
		{"State", &req.State},
		{"Zip code", &req.ZipCode},
	}

	for _, f := range fields {
		value, err := GetSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			log.Printf("error: %v", err)
			return
		}
		*f.dst = value
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	req.Password = password

	user, err := a.api.Signup(ctx, req)
	if err != nil {
		log.Printf("Signup failed: %v", err)
		return
	}

	a.user = user
	printlnFn("Signed up as", user.Email)
}

// Login authenticates with email/password; the fresh session cookie replaces
// any previous one in the jar.
func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		log.Printf("Login failed: %v", err)
		return
	}

	a.user = user
	printlnFn("Logged in as", user.Email)
}

// Logout revokes the current session server-side and clears local state.
func (a *App) Logout(ctx context.Context) {
	if _, err := a.api.Logout(ctx); err != nil {
		log.Printf("Logout failed: %v", err)
		return
	}
	a.user = nil
	printlnFn("Logged out")
}
