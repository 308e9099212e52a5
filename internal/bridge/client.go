package bridge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/cmdpal/cmdpal/internal/store"
)

// Client is the display-process side of the bridge. It satisfies
// service.Remote; any transport or protocol failure comes back as an
// error so the display facade can degrade locally.
//
// Calls are serialized: the protocol answers requests in order, so one
// in-flight request per connection keeps matching trivial.
type Client struct {
	mu sync.Mutex
	w  io.Writer
	r  *bufio.Scanner
}

// NewClient wraps an established connection to the host process
// (typically the host's stdin/stdout pipe pair).
func NewClient(r io.Reader, w io.Writer) *Client {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Client{w: w, r: scanner}
}

// call performs one request/response round trip. out may be nil when the
// caller only cares about success.
func (c *Client) call(method string, params interface{}, out interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := Request{ID: uuid.NewString(), Method: method}
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("bridge: marshal params: %w", err)
		}
		req.Params = data
	}

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("bridge: marshal request: %w", err)
	}
	if _, err := fmt.Fprintf(c.w, "%s\n", data); err != nil {
		return fmt.Errorf("bridge: send: %w", err)
	}

	for c.r.Scan() {
		line := c.r.Bytes()
		if len(line) == 0 {
			continue
		}
		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			return fmt.Errorf("bridge: decode response: %w", err)
		}
		if resp.ID != req.ID {
			// A response for a request this client never sent;
			// the connection is not in a trustworthy state.
			return fmt.Errorf("bridge: response id mismatch: got %q", resp.ID)
		}
		if resp.Error != nil {
			return fmt.Errorf("bridge: %s", resp.Error.Message)
		}
		if out != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, out); err != nil {
				return fmt.Errorf("bridge: decode result: %w", err)
			}
		}
		return nil
	}
	if err := c.r.Err(); err != nil {
		return fmt.Errorf("bridge: read: %w", err)
	}
	return fmt.Errorf("bridge: connection closed")
}

// SearchCommands forwards a search to the host process.
func (c *Client) SearchCommands(query string, limit int) ([]store.Command, error) {
	var cmds []store.Command
	if err := c.call(MethodSearchCommands, searchParams{Query: query, Limit: limit}, &cmds); err != nil {
		return nil, err
	}
	return cmds, nil
}

// GetCommandByName forwards a lookup; a null result maps back to
// store.ErrNotFound.
func (c *Client) GetCommandByName(name string) (*store.Command, error) {
	var cmd *store.Command
	if err := c.call(MethodGetCommandByName, nameParams{Name: name}, &cmd); err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, store.ErrNotFound
	}
	return cmd, nil
}

// GetRecentCommands forwards a recent-list request.
func (c *Client) GetRecentCommands(limit int) ([]store.Command, error) {
	var cmds []store.Command
	if err := c.call(MethodGetRecentCommands, limitParams{Limit: limit}, &cmds); err != nil {
		return nil, err
	}
	return cmds, nil
}

// GetCommandCount forwards a count request.
func (c *Client) GetCommandCount() (int, error) {
	var count int
	if err := c.call(MethodGetCommandCount, nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// SaveCommand forwards a save.
func (c *Client) SaveCommand(cmd store.Command) error {
	var ok bool
	if err := c.call(MethodSaveCommand, cmd, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bridge: save rejected")
	}
	return nil
}

// LogCommandUsage forwards a usage-log append.
func (c *Client) LogCommandUsage(commandID int64, rawInput string) error {
	var ok bool
	err := c.call(MethodLogCommandUsage,
		usageParams{CommandID: commandID, RawInput: rawInput}, &ok)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bridge: usage log rejected")
	}
	return nil
}
