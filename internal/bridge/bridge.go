/*
Package bridge carries store operations between the display process and
the host process.

The wire format is line-delimited JSON request/response. The host side
(Server) reads requests and executes them against whichever backend its
facade selected; the display side (Client) implements the same contract
by forwarding every call. Transport failures surface as errors so the
display facade can degrade to its local fallback.
*/
package bridge

import "encoding/json"

// Methods exposed across the bridge.
const (
	MethodSearchCommands    = "searchCommands"
	MethodGetCommandByName  = "getCommandByName"
	MethodGetRecentCommands = "getRecentCommands"
	MethodGetCommandCount   = "getCommandCount"
	MethodSaveCommand       = "saveCommand"
	MethodLogCommandUsage   = "logCommandUsage"
)

// Request is a single bridge call.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response answers exactly one Request, matched by ID.
type Response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// Error is a bridge-level failure description.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Error codes, JSON-RPC flavored.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Parameter shapes for each method.

type searchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type nameParams struct {
	Name string `json:"name"`
}

type limitParams struct {
	Limit int `json:"limit,omitempty"`
}

type usageParams struct {
	CommandID int64  `json:"commandId,omitempty"`
	RawInput  string `json:"rawInput"`
}
