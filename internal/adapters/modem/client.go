package modem

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/google/uuid"

	"aircardctl/internal/domain"
	"aircardctl/internal/ports"
)

const (
	statusPath  = "/model.json"
	smsSendPath = "/Forms/smsSendMsg"
	configPath  = "/Forms/config"

	formContentType = "application/x-www-form-urlencoded"
)

// Client drives the device's web-management API over plain HTTP. The
// firmware speaks http only; there is no TLS endpoint to validate.
type Client struct {
	transport *Transport
	host      string
	password  string
	log       *slog.Logger
	session   *domain.Session
}

// NewClient prepares an unauthenticated client for the device at host
// (bare hostname or host:port). Call Login before any other operation.
func NewClient(host, password string, log *slog.Logger, verbose bool) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		transport: NewTransport(jar, log, verbose),
		host:      strings.TrimSuffix(host, "/"),
		password:  password,
		log:       log,
		session:   &domain.Session{Cookies: jar},
	}, nil
}

func (c *Client) url(path string) string {
	return "http://" + c.host + path
}

// Login performs the handshake: fetch the model document for the security
// token and login path, post the password, then re-fetch the document
// authenticated. All three calls share one cookie jar so the session
// cookie the device sets survives across them. No step is retried.
func (c *Client) Login(ctx context.Context) (*domain.StatusDocument, error) {
	statusURL := c.url(statusPath)

	code, body, err := c.transport.Request(ctx, http.MethodGet, statusURL, nil, "")
	if err != nil {
		return nil, err
	}
	if !is2xx(code) {
		return nil, fmt.Errorf("HTTP response code %d from %s", code, statusURL)
	}

	doc, err := domain.DecodeStatus([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", statusURL, err)
	}
	token := doc.Session.SecToken
	loginPath := doc.General.ConfigURL
	if i := strings.Index(loginPath, "?"); i >= 0 {
		loginPath = loginPath[:i]
	}

	loginURL := c.url(loginPath)
	form := "session.password=" + c.password + "&token=" + token
	code, _, err = c.transport.Request(ctx, http.MethodPost, loginURL,
		map[string]string{"Content-Type": formContentType}, form)
	if err != nil {
		return nil, err
	}
	if !is2xx(code) {
		return nil, fmt.Errorf("Failed to login to %s. HTTP response code: %d", loginURL, code)
	}
	c.log.Debug("login accepted", "host", c.host)

	code, body, err = c.transport.Request(ctx, http.MethodGet, statusURL, nil, "")
	if err != nil {
		return nil, err
	}
	if !is2xx(code) {
		return nil, fmt.Errorf("HTTP response code %d from %s: %s", code, statusURL, body)
	}
	doc, err = domain.DecodeStatus([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("parse authenticated %s: %w", statusURL, err)
	}

	// some firmware rotates the token after login, so prefer the one
	// from the authenticated document
	c.session.SecToken = doc.Session.SecToken
	if c.session.SecToken == "" {
		c.session.SecToken = token
	}
	return doc, nil
}

// SendSMS posts one message through the SMS form. The device gives no
// receipt beyond the HTTP status.
func (c *Client) SendSMS(ctx context.Context, receiver, text string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	form := "sms.sendMsg.receiver=" + uriEncode(receiver) +
		"&sms.sendMsg.text=" + uriEncode(text) +
		"&sms.sendMsg.clientId=" + uuid.NewString() +
		"&action=send" +
		"&token=" + c.session.SecToken

	smsURL := c.url(smsSendPath)
	code, _, err := c.transport.Request(ctx, http.MethodPost, smsURL,
		map[string]string{"Content-Type": formContentType}, form)
	if err != nil {
		return err
	}
	if !is2xx(code) {
		return fmt.Errorf("Failed to send SMS via %s. HTTP response code: %d", smsURL, code)
	}
	c.log.Info("SMS submitted", "receiver", receiver)
	return nil
}

// SetConfig applies pairs in order through the configuration form. The
// device reports validation failures in the reply JSON rather than the
// HTTP status.
func (c *Client) SetConfig(ctx context.Context, pairs []ports.ConfigPair) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
		b.WriteByte('&')
	}
	b.WriteString("err_redirect=" + uriEncode("/error.json"))
	b.WriteString("&ok_redirect=" + uriEncode("/success.json"))
	b.WriteString("&token=" + c.session.SecToken)

	cfgURL := c.url(configPath)
	code, body, err := c.transport.Request(ctx, http.MethodPost, cfgURL,
		map[string]string{"Content-Type": formContentType}, b.String())
	if err != nil {
		return err
	}
	if !is2xx(code) {
		return fmt.Errorf("Failed to set config via %s. HTTP response code: %d", cfgURL, code)
	}

	var reply struct {
		Errno     json.Number `json:"errno"`
		Errdetail string      `json:"errdetail"`
	}
	// the reply is the redirect target; a non-JSON body just means no
	// error report
	if err := json.Unmarshal([]byte(body), &reply); err == nil && truthy(reply.Errno) {
		return fmt.Errorf("Error setting key=value, Error No: %s, Error detail: %s",
			reply.Errno.String(), reply.Errdetail)
	}
	return nil
}

// Session exposes the authenticated session state.
func (c *Client) Session() *domain.Session {
	return c.session
}

// Close discards the session. Cookies live only in memory, so dropping
// the jar is the whole cleanup; this runs on every exit path.
func (c *Client) Close() {
	if c.session != nil {
		c.session.Close()
	}
}

func (c *Client) requireSession() error {
	if c.session == nil || c.session.SecToken == "" {
		return fmt.Errorf("not logged in to %s", c.host)
	}
	return nil
}

func is2xx(code int) bool {
	return code >= 200 && code < 300
}

func truthy(n json.Number) bool {
	s := n.String()
	return s != "" && s != "0"
}
