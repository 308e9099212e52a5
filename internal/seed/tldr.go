package seed

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmdpal/cmdpal/internal/store"
)

// ParseTldrPage parses a single tldr-pages markdown page into a command
// record. The page format is line-oriented:
//
//	# name
//	> one-line description
//	- example description:
//	`example command`
//
// The full page text becomes the primary content body.
func ParseTldrPage(data []byte) (store.Command, error) {
	cmd := store.Command{
		Content: strings.TrimSpace(string(data)),
		Source:  store.SourceSeed,
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "# "):
			cmd.Name = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case strings.HasPrefix(line, "> "):
			text := strings.TrimSpace(strings.TrimPrefix(line, "> "))
			// Trailing "More information" links are boilerplate,
			// not part of the summary.
			if cmd.Summary == "" && !strings.HasPrefix(text, "More information") {
				cmd.Summary = strings.TrimSuffix(text, ".")
			}
		case strings.HasPrefix(line, "`") && strings.HasSuffix(line, "`") && len(line) > 1:
			cmd.Examples = append(cmd.Examples, strings.Trim(line, "`"))
		}
	}
	if err := scanner.Err(); err != nil {
		return store.Command{}, fmt.Errorf("read tldr page: %w", err)
	}
	if cmd.Name == "" {
		return store.Command{}, fmt.Errorf("tldr page has no title line")
	}
	cmd.Description = cmd.Summary
	return cmd, nil
}

// ParseTldrDir walks a tldr-pages style tree (<root>/<platform>/<name>.md)
// and parses every page. The platform directory name becomes the
// command's category. Unparseable pages are skipped.
func ParseTldrDir(root string) ([]store.Command, error) {
	var cmds []store.Command
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		cmd, err := ParseTldrPage(data)
		if err != nil {
			return nil
		}
		cmd.Category = filepath.Base(filepath.Dir(path))
		cmds = append(cmds, cmd)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if len(cmds) == 0 {
		return nil, fmt.Errorf("no tldr pages found under %s", root)
	}
	return cmds, nil
}
