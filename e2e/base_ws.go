package e2e

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"golang.org/x/net/websocket"
)

// Frame is the wire shape used on the hub websocket, inbound and outbound
// fields merged for test convenience.
type Frame struct {
	Type     string `json:"type"`
	Content  string `json:"content,omitempty"`
	Files    []File `json:"files,omitempty"`
	Sender   string `json:"sender,omitempty"`
	Message  string `json:"message,omitempty"`
	IsTyping bool   `json:"is_typing,omitempty"`
}

type File struct {
	Name string `json:"name"`
	Mime string `json:"mime"`
	Data string `json:"data"`
}

type BaseWSSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
// and skips the whole suite when no hub address is configured.
func (s *BaseWSSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.HubAddr == "" {
		s.T().Skip("HUB_ADDR not set, skipping live hub suite")
	}
}

// Client is one live websocket participant with frame-level helpers.
type Client struct {
	suite *BaseWSSuite
	t     *testing.T
	name  string
	conn  *websocket.Conn
	dec   *json.Decoder
	enc   *json.Encoder
}

// Dial connects a participant with a colorized header in the test log.
func (s *BaseWSSuite) Dial(t *testing.T, name string) *Client {
	t.Helper()
	header := fmt.Sprintf("  ====== %s joins ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	wsURL := strings.TrimRight(s.Config.HubAddr, "/") + "/ws/" + url.PathEscape(name)
	origin := strings.Replace(s.Config.HubAddr, "ws://", "http://", 1)
	conn, err := websocket.Dial(wsURL, "", origin)
	s.Require().NoError(err, "Failed to connect to hub at "+wsURL)
	t.Cleanup(func() { _ = conn.Close() })

	return &Client{
		suite: s,
		t:     t,
		name:  name,
		conn:  conn,
		dec:   json.NewDecoder(conn),
		enc:   json.NewEncoder(conn),
	}
}

func (c *Client) Send(f Frame) {
	c.t.Helper()
	if c.suite.Config.DebugFrames {
		raw, _ := json.Marshal(f)
		c.t.Logf("%s >> %s", c.name, raw)
	}
	c.suite.Require().NoError(c.enc.Encode(f))
}

// Read blocks for the next frame, up to the deadline.
func (c *Client) Read(deadline time.Duration) Frame {
	c.t.Helper()
	c.suite.Require().NoError(c.conn.SetReadDeadline(time.Now().Add(deadline)))
	var f Frame
	c.suite.Require().NoError(c.dec.Decode(&f), "%s expected a frame", c.name)
	if c.suite.Config.DebugFrames {
		raw, _ := json.Marshal(f)
		c.t.Logf("%s << %s", c.name, raw)
	}
	return f
}

// ReadUntil reads frames until pred accepts one, failing at the deadline.
func (c *Client) ReadUntil(deadline time.Duration, pred func(Frame) bool) Frame {
	c.t.Helper()
	end := time.Now().Add(deadline)
	for {
		remaining := time.Until(end)
		c.suite.Require().Positive(remaining, "%s ran out of time waiting for a frame", c.name)
		f := c.Read(remaining)
		if pred(f) {
			return f
		}
	}
}
