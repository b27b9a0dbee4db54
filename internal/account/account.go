// Package account tracks the demo user session flag and the digital
// city card derived from it. There is no real identity backend.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kaposvar-plus-backend/internal/kv"
)

// SessionSlotKey is the durable slot holding the login flag.
const SessionSlotKey = "userSession"

var ErrMissingUserID = errors.New("userId is required")

// Session is the persisted login flag.
type Session struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserID     string `json:"userId,omitempty"`
	UserName   string `json:"userName,omitempty"`
}

// Card is the digital city-card payload shown on the card screen.
type Card struct {
	Number     string `json:"number"`
	HolderName string `json:"holderName"`
	Status     string `json:"status"`
}

// Accounts owns the user session slot.
type Accounts struct {
	store kv.Store
}

// NewAccounts creates an account store over the given KV store.
func NewAccounts(store kv.Store) *Accounts {
	return &Accounts{store: store}
}

// Login records a logged-in session for the given user.
func (a *Accounts) Login(ctx context.Context, userID, userName string) (Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, ErrMissingUserID
	}
	session := Session{IsLoggedIn: true, UserID: userID, UserName: strings.TrimSpace(userName)}
	if err := a.persist(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Logout clears the login flag.
func (a *Accounts) Logout(ctx context.Context) error {
	return a.persist(ctx, Session{IsLoggedIn: false})
}

// Current returns the stored session. Missing or malformed storage
// reads as logged out.
func (a *Accounts) Current(ctx context.Context) Session {
	raw, ok, err := a.store.Get(ctx, SessionSlotKey)
	if err != nil || !ok {
		return Session{}
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return Session{}
	}
	return session
}

// Card returns the city card for the logged-in user, or false when
// nobody is logged in.
func (a *Accounts) Card(ctx context.Context) (Card, bool) {
	session := a.Current(ctx)
	if !session.IsLoggedIn {
		return Card{}, false
	}
	return Card{
		Number:     "KAP-" + strings.ToUpper(session.UserID),
		HolderName: session.UserName,
		Status:     "ACTIVE",
	}, true
}

func (a *Accounts) persist(ctx context.Context, session Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode user session: %w", err)
	}
	return a.store.Set(ctx, SessionSlotKey, string(raw))
}
