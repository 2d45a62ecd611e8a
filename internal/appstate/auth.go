package appstate

import (
	"context"

	"ecocampus/internal/service"
)

// AuthStatus enumerates the authentication flow states.
type AuthStatus int

const (
	AuthIdle AuthStatus = iota
	AuthLoading
	AuthSuccess
	AuthError
)

// AuthState is one snapshot of the flow: Idle → Loading → Success or
// Error(message). Callers must Reset a terminal state before starting a new
// attempt, so a stale result is never read as a fresh one.
type AuthState struct {
	Status  AuthStatus
	Message string // Set only for AuthError
}

// AuthFlow drives login and registration and publishes the state machine.
type AuthFlow struct {
	svc   *service.Service
	State *Value[AuthState]
}

// NewAuthFlow creates an idle authentication flow.
func NewAuthFlow(svc *service.Service) *AuthFlow {
	return &AuthFlow{svc: svc, State: NewValue(AuthState{Status: AuthIdle})}
}

// Reset returns the flow to Idle, clearing any terminal state.
func (f *AuthFlow) Reset() {
	f.State.Set(AuthState{Status: AuthIdle})
}

// Login attempts authentication and drives the state machine to a terminal
// state.
func (f *AuthFlow) Login(ctx context.Context, email, password string) {
	if email == "" || password == "" {
		f.State.Set(AuthState{Status: AuthError, Message: "Please fill in email and password."})
		return
	}
	f.State.Set(AuthState{Status: AuthLoading})

	_, err := f.svc.Authenticate(ctx, email, password)
	switch {
	case err == nil:
		f.State.Set(AuthState{Status: AuthSuccess})
	case service.IsBusinessError(err):
		f.State.Set(AuthState{Status: AuthError, Message: "Invalid credentials. Check the email or create an account."})
	default:
		f.State.Set(AuthState{Status: AuthError, Message: "System error: " + err.Error()})
	}
}

// Register attempts registration (with auto-login) and drives the state
// machine to a terminal state.
func (f *AuthFlow) Register(ctx context.Context, name, studentNumber, email, password string) {
	f.State.Set(AuthState{Status: AuthLoading})

	_, err := f.svc.Register(ctx, name, studentNumber, email, password)
	switch {
	case err == nil:
		f.State.Set(AuthState{Status: AuthSuccess})
	case service.IsBusinessError(err):
		f.State.Set(AuthState{Status: AuthError, Message: err.Error()})
	default:
		f.State.Set(AuthState{Status: AuthError, Message: "Could not create the account: " + err.Error()})
	}
}
