// Package vk is a minimal client for VK OAuth sign-in.
package vk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultOAuthURL = "https://oauth.vk.com"
	DefaultAPIURL   = "https://api.vk.com"
	APIVersion      = "5.131"
)

var (
	ErrNoAccessToken = errors.New("failed to get access token")
	ErrNoUser        = errors.New("failed to get user data")
)

// Token is the result of exchanging an authorization code.
type Token struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	UserID           int64  `json:"user_id"`
	Email            string `json:"email"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// User is the subset of the users.get profile the app needs.
type User struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Photo100   string `json:"photo_100"`
	ScreenName string `json:"screen_name"`
}

// FullName joins the first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Client struct {
	HTTPClient *http.Client
	OAuthURL   string
	APIURL     string
	AppID      string
	AppSecret  string
}

func NewClient(appID, appSecret string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		OAuthURL:   DefaultOAuthURL,
		APIURL:     DefaultAPIURL,
		AppID:      appID,
		AppSecret:  appSecret,
	}
}

// AuthorizeURL is where the browser is sent to grant access.
func (c *Client) AuthorizeURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", c.AppID)
	q.Set("display", "popup")
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("v", APIVersion)
	if state != "" {
		q.Set("state", state)
	}
	return c.OAuthURL + "/authorize?" + q.Encode()
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (Token, error) {
	q := url.Values{}
	q.Set("client_id", c.AppID)
	q.Set("client_secret", c.AppSecret)
	q.Set("redirect_uri", redirectURI)
	q.Set("code", code)

	var token Token
	if err := c.getJSON(ctx, c.OAuthURL+"/access_token?"+q.Encode(), &token); err != nil {
		return Token{}, err
	}
	if token.AccessToken == "" {
		if token.ErrorDescription != "" {
			return Token{}, fmt.Errorf("%w: %s", ErrNoAccessToken, token.ErrorDescription)
		}
		return Token{}, ErrNoAccessToken
	}
	return token, nil
}

// GetUser loads the profile of the token owner.
func (c *Client) GetUser(ctx context.Context, accessToken string) (User, error) {
	q := url.Values{}
	q.Set("access_token", accessToken)
	q.Set("fields", "photo_100,screen_name")
	q.Set("v", APIVersion)

	var resp struct {
		Response []User `json:"response"`
		Error    *struct {
			Code int    `json:"error_code"`
			Msg  string `json:"error_msg"`
		} `json:"error"`
	}
	if err := c.getJSON(ctx, c.APIURL+"/method/users.get?"+q.Encode(), &resp); err != nil {
		return User{}, err
	}
	if resp.Error != nil {
		return User{}, fmt.Errorf("%w: %s", ErrNoUser, resp.Error.Msg)
	}
	if len(resp.Response) == 0 {
		return User{}, ErrNoUser
	}
	return resp.Response[0], nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build vk request: %w", err)
	}
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("vk request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read vk response: %w", err)
	}
	// VK reports OAuth errors with 4xx and a JSON body, so decode regardless of status.
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode vk response (status %d): %w", res.StatusCode, err)
	}
	return nil
}
