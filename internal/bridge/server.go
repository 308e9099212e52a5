package bridge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/cmdpal/cmdpal/internal/service"
	"github.com/cmdpal/cmdpal/internal/store"
)

// Server executes bridge requests against a facade. One Server instance
// serves one connection; requests are handled strictly in order.
type Server struct {
	svc service.Service
}

// NewServer creates a bridge server around the host facade.
func NewServer(svc service.Service) *Server {
	return &Server{svc: svc}
}

// Serve reads line-delimited requests from r until EOF, writing one
// response line per request to w. A malformed line produces an error
// response, never a dropped connection.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.write(w, Response{Error: &Error{
				Code: CodeParseError, Message: "invalid request: " + err.Error(),
			}})
			continue
		}
		s.write(w, s.handle(&req))
	}
	return scanner.Err()
}

func (s *Server) write(w io.Writer, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Warning: marshal bridge response: %v", err)
		return
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		log.Printf("Warning: write bridge response: %v", err)
	}
}

func (s *Server) handle(req *Request) Response {
	result, err := s.dispatch(req)
	if err != nil {
		code := CodeInternalError
		if bridgeErr, ok := err.(*Error); ok {
			return Response{ID: req.ID, Error: bridgeErr}
		}
		return Response{ID: req.ID, Error: &Error{Code: code, Message: err.Error()}}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return Response{ID: req.ID, Error: &Error{
			Code: CodeInternalError, Message: err.Error(),
		}}
	}
	return Response{ID: req.ID, Result: data}
}

func (s *Server) dispatch(req *Request) (interface{}, error) {
	switch req.Method {
	case MethodSearchCommands:
		var p searchParams
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.svc.SearchCommands(p.Query, p.Limit)

	case MethodGetCommandByName:
		var p nameParams
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, err
		}
		cmd, err := s.svc.GetCommandByName(p.Name)
		if err == store.ErrNotFound {
			// Absence crosses the wire as null, not as an error.
			return nil, nil
		}
		return cmd, err

	case MethodGetRecentCommands:
		var p limitParams
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.svc.GetRecentCommands(p.Limit)

	case MethodGetCommandCount:
		return s.svc.GetCommandCount()

	case MethodSaveCommand:
		var cmd store.Command
		if err := unmarshalParams(req.Params, &cmd); err != nil {
			return nil, err
		}
		if err := s.svc.SaveCommand(cmd); err != nil {
			return false, err
		}
		return true, nil

	case MethodLogCommandUsage:
		var p usageParams
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, err
		}
		if err := s.svc.LogCommandUsage(p.CommandID, p.RawInput); err != nil {
			return false, err
		}
		return true, nil

	default:
		return nil, &Error{Code: CodeMethodNotFound,
			Message: "method not found: " + req.Method}
	}
}

func unmarshalParams(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	return nil
}
