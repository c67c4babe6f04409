// Package wcf is a thin client over the WCF WeChat automation bridge. The
// bridge wraps responses in a `{data, error, status}` envelope where status 0
// means success.
package wcf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BridgeError is raised for transport failures and non-zero envelope status.
type BridgeError struct {
	Message string
}

func (e *BridgeError) Error() string {
	if e.Message == "" {
		return "wcf: unknown error"
	}
	return "wcf: " + e.Message
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Error  *string         `json:"error"`
	Status int             `json:"status"`
}

// UserInfo is the automation account's own identity.
type UserInfo struct {
	Wxid         string `json:"wxid"`
	Name         string `json:"name"`
	Mobile       string `json:"mobile"`
	Home         string `json:"home"`
	SmallHeadURL string `json:"small_head_url"`
	BigHeadURL   string `json:"big_head_url"`
}

type Client struct {
	apiBase    string
	httpClient *http.Client
}

func New(apiBase string) *Client {
	return &Client{
		apiBase: apiBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetUserInfo fetches the bot account's identity; the router uses only the
// display name to build the at-mention prefix.
func (c *Client) GetUserInfo(ctx context.Context) (UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/userinfo", nil)
	if err != nil {
		return UserInfo{}, &BridgeError{Message: fmt.Sprintf("building request: %v", err)}
	}

	env, err := c.handle(req)
	if err != nil {
		return UserInfo{}, err
	}

	var info UserInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return UserInfo{}, &BridgeError{Message: fmt.Sprintf("decoding userinfo: %v", err)}
	}
	return info, nil
}

// SendText sends one outbound text message. Receiver is a room or contact id;
// aters carries the wxids to at-mention, comma separated.
func (c *Client) SendText(ctx context.Context, msg, receiver, aters string) error {
	body, err := json.Marshal(map[string]string{
		"aters":    aters,
		"msg":      msg,
		"receiver": receiver,
	})
	if err != nil {
		return &BridgeError{Message: fmt.Sprintf("encoding request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/text", bytes.NewReader(body))
	if err != nil {
		return &BridgeError{Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.handle(req)
	return err
}

func (c *Client) handle(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &BridgeError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &BridgeError{Message: fmt.Sprintf("http %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &BridgeError{Message: fmt.Sprintf("invalid JSON response: %v", err)}
	}

	if env.Status != 0 {
		msg := ""
		if env.Error != nil {
			msg = *env.Error
		}
		return nil, &BridgeError{Message: msg}
	}

	return &env, nil
}
