package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/cmdpal/cmdpal/internal/bridge"
	"github.com/cmdpal/cmdpal/internal/service"
)

// dialHost opens the pipe pair to a host process. The default spawns
// this binary's own serve subcommand; tests substitute in-process pipes.
var dialHost = spawnServe

// spawnServe starts `cmdpal serve` as a child process and hands back its
// stdio pair. The returned stop function closes the child's stdin, which
// ends its request loop, then reaps it.
func spawnServe() (io.Reader, io.Writer, func() error, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("locate binary: %w", err)
	}

	args := []string{"serve"}
	if flags.configDir != "" {
		args = append(args, "--config-dir", flags.configDir)
	}
	if flags.dataDir != "" {
		args = append(args, "--data-dir", flags.dataDir)
	}

	cmd := exec.Command(exe, args...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("host stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("host stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, nil, fmt.Errorf("start host process: %w", err)
	}

	stop := func() error {
		stdin.Close()
		return cmd.Wait()
	}
	return stdout, stdin, stop, nil
}

// newDisplay builds the display-role facade over a freshly dialed host.
// Bridge failures after this point degrade per call inside the facade;
// only failing to dial at all is an error.
func newDisplay() (service.Service, error) {
	r, w, stop, err := dialHost()
	if err != nil {
		return nil, fmt.Errorf("dial host: %w", err)
	}
	return &remoteService{
		Display: service.NewDisplay(bridge.NewClient(r, w)),
		stop:    stop,
	}, nil
}

// remoteService ties the display facade's lifetime to the dialed host
// connection.
type remoteService struct {
	*service.Display
	stop func() error
}

var _ service.Service = (*remoteService)(nil)

func (r *remoteService) Close() error {
	err := r.Display.Close()
	if stopErr := r.stop(); stopErr != nil && err == nil {
		err = stopErr
	}
	return err
}
