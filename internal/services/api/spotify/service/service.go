// Package service proxies the Spotify Web API with server-held OAuth tokens
package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"homeboard/internal/adapters/upstream"
	"homeboard/internal/platform/config"
	perr "homeboard/internal/platform/errors"
	"homeboard/internal/platform/logger"
	"homeboard/internal/services/api/spotify/domain"
)

const (
	defaultScopes = "user-read-playback-state user-modify-playback-state playlist-read-private"
	tokenSlack    = 30 * time.Second // refresh slightly before actual expiry
)

// Service defines the spotify proxy contract
type Service interface {
	domain.ServicePort
}

// Svc implements the spotify proxy
type Svc struct {
	client       *upstream.Client
	accountsURL  string
	apiURL       string
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       string

	sessions *store
	mu       sync.Mutex
	states   map[string]string // oauth state -> user id

	log logger.Logger
	now func() time.Time
}

// Config carries the app credentials read from env
type Config struct {
	AccountsURL  string
	APIURL       string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       string
}

// FromConf reads the SPOTIFY_* settings
func FromConf(cfg config.Conf) Config {
	c := cfg.Prefix("SPOTIFY_")
	return Config{
		AccountsURL:  c.MayString("ACCOUNTS_URL", "https://accounts.spotify.com"),
		APIURL:       c.MayString("API_URL", "https://api.spotify.com/v1"),
		ClientID:     c.MayString("CLIENT_ID", ""),
		ClientSecret: c.MayString("CLIENT_SECRET", ""),
		RedirectURI:  c.MayString("REDIRECT_URI", ""),
		Scopes:       c.MayString("SCOPES", defaultScopes),
	}
}

// New constructs a spotify proxy service
func New(cfg Config, client *upstream.Client) *Svc {
	if client == nil {
		client = upstream.New(upstream.Options{Integration: "spotify"})
	}
	return &Svc{
		client:       client,
		accountsURL:  cfg.AccountsURL,
		apiURL:       cfg.APIURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		scopes:       cfg.Scopes,
		sessions:     newStore(),
		states:       make(map[string]string),
		log:          *logger.Named("spotify"),
		now:          time.Now,
	}
}

// Status reports whether userID holds a session. Unauthenticated users get
// a fresh authorization URL to start the dance.
func (s *Svc) Status(_ context.Context, userID string) domain.Status {
	if _, ok := s.sessions.get(userID); ok {
		return domain.Status{Authenticated: true}
	}
	return domain.Status{Authenticated: false, AuthURL: s.AuthURL(userID)}
}

// AuthURL builds the authorization redirect with a one-shot state token
func (s *Svc) AuthURL(userID string) string {
	state := uuid.NewString()
	s.mu.Lock()
	s.states[state] = userID
	s.mu.Unlock()

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", s.clientID)
	q.Set("scope", s.scopes)
	q.Set("redirect_uri", s.redirectURI)
	q.Set("state", state)
	return s.accountsURL + "/authorize?" + q.Encode()
}

// Callback finishes the dance: resolves the state back to a user id and
// exchanges the code for tokens. Returns the user id that authenticated.
func (s *Svc) Callback(ctx context.Context, state, code string) (string, error) {
	s.mu.Lock()
	userID, ok := s.states[state]
	delete(s.states, state)
	s.mu.Unlock()
	if !ok {
		return "", perr.Newf(perr.ErrorCodeInvalidArgument, "unknown oauth state")
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", s.redirectURI)
	tok, err := s.tokenRequest(ctx, form)
	if err != nil {
		return "", err
	}
	s.sessions.put(userID, session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    s.now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	})
	s.log.Info().Str("user", userID).Msg("spotify session established")
	return userID, nil
}

// Play starts or resumes playback, optionally targeting a device/context
func (s *Svc) Play(ctx context.Context, userID string, in domain.PlayInput) error {
	path := "/me/player/play"
	if in.DeviceID != "" {
		path += "?device_id=" + url.QueryEscape(in.DeviceID)
	}
	var body any
	if in.ContextURI != "" {
		body = map[string]string{"context_uri": in.ContextURI}
	}
	_, err := s.call(ctx, userID, http.MethodPut, path, body)
	return err
}

// Pause pauses playback
func (s *Svc) Pause(ctx context.Context, userID string) error {
	_, err := s.call(ctx, userID, http.MethodPut, "/me/player/pause", nil)
	return err
}

// Next skips to the next track
func (s *Svc) Next(ctx context.Context, userID string) error {
	_, err := s.call(ctx, userID, http.MethodPost, "/me/player/next", nil)
	return err
}

// Previous skips to the previous track
func (s *Svc) Previous(ctx context.Context, userID string) error {
	_, err := s.call(ctx, userID, http.MethodPost, "/me/player/previous", nil)
	return err
}

// Devices lists the user's playback devices
func (s *Svc) Devices(ctx context.Context, userID string) (json.RawMessage, error) {
	return s.call(ctx, userID, http.MethodGet, "/me/player/devices", nil)
}

// Transfer moves playback to the given device
func (s *Svc) Transfer(ctx context.Context, userID string, in domain.TransferInput) error {
	_, err := s.call(ctx, userID, http.MethodPut, "/me/player",
		map[string]any{"device_ids": []string{in.DeviceID}})
	return err
}

// Playlists lists the user's playlists
func (s *Svc) Playlists(ctx context.Context, userID string) (json.RawMessage, error) {
	return s.call(ctx, userID, http.MethodGet, "/me/playlists", nil)
}

// PlaylistTracks lists the tracks of one playlist
func (s *Svc) PlaylistTracks(ctx context.Context, userID, playlistID string) (json.RawMessage, error) {
	return s.call(ctx, userID, http.MethodGet, "/playlists/"+url.PathEscape(playlistID)+"/tracks", nil)
}

// call performs one authenticated passthrough request. A 401/403 from the
// API means the tokens are dead: the session is dropped so the next Status
// read hands out a fresh auth URL.
func (s *Svc) call(ctx context.Context, userID, method, path string, body any) (json.RawMessage, error) {
	token, err := s.accessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "spotify encode body")
		}
		reader = strings.NewReader(string(raw))
	}
	req, err := http.NewRequestWithContext(ctx, method, s.apiURL+path, reader)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "spotify build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden) {
			s.sessions.delete(userID)
			s.log.Warn().Str("user", userID).Int("status", se.Status).
				Msg("spotify rejected the session, forcing re-auth")
			return nil, perr.Newf(perr.ErrorCodeUnauthorized, "spotify session expired")
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "spotify read body")
	}
	if len(raw) == 0 {
		return nil, nil // player commands answer 204
	}
	return json.RawMessage(raw), nil
}

// accessToken returns a live token for userID, refreshing when close to expiry
func (s *Svc) accessToken(ctx context.Context, userID string) (string, error) {
	sess, ok := s.sessions.get(userID)
	if !ok {
		return "", perr.Newf(perr.ErrorCodeUnauthorized, "no spotify session for user")
	}
	if s.now().Add(tokenSlack).Before(sess.ExpiresAt) {
		return sess.AccessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", sess.RefreshToken)
	tok, err := s.tokenRequest(ctx, form)
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden) {
			s.sessions.delete(userID)
			return "", perr.Newf(perr.ErrorCodeUnauthorized, "spotify refresh rejected")
		}
		return "", err
	}
	sess.AccessToken = tok.AccessToken
	sess.ExpiresAt = s.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	if tok.RefreshToken != "" {
		sess.RefreshToken = tok.RefreshToken
	}
	s.sessions.put(userID, sess)
	return sess.AccessToken, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// tokenRequest posts a form to the accounts token endpoint with app
// credentials as basic auth
func (s *Svc) tokenRequest(ctx context.Context, form url.Values) (tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "spotify build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.clientID, s.clientSecret)

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return tokenResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return tokenResponse{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "spotify decode token response")
	}
	return tok, nil
}
