package userdir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/entities/userprofile"
	"github.com/yoku/guildmaster/pkg/serrors"
)

var ErrUserNotFound = serrors.NotFound("USER_NOT_FOUND", "user not found in directory")

// Client resolves user profiles from the identity service over HTTP. It
// implements userprofile.Directory.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FindByEmail(ctx context.Context, email string) (userprofile.Profile, error) {
	endpoint := fmt.Sprintf("%s/v1/users?email=%s", c.baseURL, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return userprofile.Profile{}, errors.Wrap(err, "failed to build user lookup request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return userprofile.Profile{}, errors.Wrap(err, "user directory lookup failed")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return userprofile.Profile{}, ErrUserNotFound
	default:
		return userprofile.Profile{}, errors.Errorf("user directory returned status %d", resp.StatusCode)
	}

	var profile userprofile.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return userprofile.Profile{}, errors.Wrap(err, "failed to decode user profile")
	}
	return profile, nil
}

func (c *Client) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]userprofile.Profile, error) {
	if len(ids) == 0 {
		return []userprofile.Profile{}, nil
	}

	body, err := json.Marshal(map[string][]uuid.UUID{"ids": ids})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode user batch request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/users/batch", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build user batch request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "user directory batch lookup failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("user directory returned status %d", resp.StatusCode)
	}

	var profiles []userprofile.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		return nil, errors.Wrap(err, "failed to decode user profiles")
	}
	return profiles, nil
}
