package splunk

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/gopak/sigma2splunk/internal/logging"
)

var (
	ErrAuthentication = errors.New("splunk authentication failed")
	ErrConnection     = errors.New("splunk connection failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrExecution      = errors.New("search execution failed")
)

// HTTPError is any non-2xx answer from splunkd that has no better sentinel.
type HTTPError struct {
	Method   string
	Path     string
	Status   int
	Messages []string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("splunk API error: %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

func (e *HTTPError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrAuthentication
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

type Options struct {
	// BaseURL is scheme://host:port of the management port.
	BaseURL  string
	Username string
	Password string
	// App and Owner pick the servicesNS namespace; empty App means /services.
	App       string
	Owner     string
	VerifyTLS bool
	// Timeout bounds each request; zero means none.
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	opts       Options
	sessionKey string
}

func NewClient(opts Options) *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = opts.Timeout
	if t, ok := hc.Transport.(*http.Transport); ok {
		// splunkd ships with a self-signed certificate.
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: !opts.VerifyTLS} //nolint:gosec
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{httpClient: hc, opts: opts}
}

// BaseURL builds scheme://hostport.
func BaseURL(scheme, hostport string) string { return scheme + "://" + hostport }

// Login exchanges the configured credentials for a session key.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("username", c.opts.Username)
	form.Set("password", c.opts.Password)
	var out struct {
		SessionKey string `json:"sessionKey"`
	}
	err := c.do(ctx, http.MethodPost, "/services/auth/login", form, &out)
	if err != nil {
		var he *HTTPError
		if errors.As(err, &he) && (he.Status == http.StatusUnauthorized || he.Status == http.StatusBadRequest) {
			return fmt.Errorf("%w: check your credentials", ErrAuthentication)
		}
		return err
	}
	if out.SessionKey == "" {
		return fmt.Errorf("%w: no session key in login response", ErrAuthentication)
	}
	c.sessionKey = out.SessionKey
	logging.Debug("logged in to " + c.opts.BaseURL + " as " + c.opts.Username)
	return nil
}

// ns returns the REST prefix for namespaced endpoints.
func (c *Client) ns() string {
	if c.opts.App == "" {
		return "/services"
	}
	owner := c.opts.Owner
	if owner == "" {
		owner = "nobody"
	}
	return "/servicesNS/" + url.PathEscape(owner) + "/" + url.PathEscape(c.opts.App)
}

// do sends one request. GET/DELETE carry form as the query string, POST as
// the body. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	if form == nil {
		form = url.Values{}
	}
	form.Set("output_mode", "json")

	u := c.opts.BaseURL + path
	var body io.Reader
	if method == http.MethodPost {
		body = strings.NewReader(form.Encode())
	} else {
		u += "?" + form.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.sessionKey != "" {
		req.Header.Set("Authorization", "Splunk "+c.sessionKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return &HTTPError{Method: method, Path: path, Status: resp.StatusCode, Messages: messagesOf(b)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

type message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func messagesOf(b []byte) []string {
	var env struct {
		Messages []message `json:"messages"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		s := strings.TrimSpace(string(b))
		if s == "" {
			return nil
		}
		return []string{s}
	}
	out := make([]string, 0, len(env.Messages))
	for _, m := range env.Messages {
		out = append(out, m.Text)
	}
	return out
}
