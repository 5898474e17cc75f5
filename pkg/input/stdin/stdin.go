// Package stdin is a minimal line-based input source for interactive
// human seats. It is a deliberately unimportant adapter: the real
// keyboard/UI front end is out of scope, this just gives cmd/setgame
// something to read local test presses from.
package stdin

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/cbodonnell/setgame/pkg/log"
)

// KeyPresser is the narrow view of a Player that a human input source
// needs: KeyPressed must not block, per the input source contract.
type KeyPresser interface {
	KeyPressed(slot int)
}

// Reader reads "<playerID> <slot>" pairs, one per line, and dispatches
// each to the matching target.
type Reader struct {
	scanner *bufio.Scanner
	targets map[int]KeyPresser
	logger  *log.Logger
}

// New returns a Reader that dispatches presses to targets, keyed by
// player id.
func New(r io.Reader, targets map[int]KeyPresser, logger *log.Logger) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
		targets: targets,
		logger:  logger,
	}
}

func (r *Reader) logf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Warn(format, args...)
		return
	}
	log.Warn(format, args...)
}

// Run reads lines until ctx is canceled or the input is exhausted. Each
// line is expected to be "<playerID> <slot>"; malformed lines are
// logged and skipped, never fatal.
func (r *Reader) Run(ctx context.Context) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for r.scanner.Scan() {
			select {
			case lines <- r.scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			r.dispatch(line)
		}
	}
}

func (r *Reader) dispatch(line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		r.logf("stdin input: expected \"<playerID> <slot>\", got %q", line)
		return
	}

	playerID, err := strconv.Atoi(fields[0])
	if err != nil {
		r.logf("stdin input: invalid player id %q", fields[0])
		return
	}
	slot, err := strconv.Atoi(fields[1])
	if err != nil {
		r.logf("stdin input: invalid slot %q", fields[1])
		return
	}

	target, ok := r.targets[playerID]
	if !ok {
		r.logf("stdin input: no such player %d", playerID)
		return
	}
	target.KeyPressed(slot)
}
