//go:build !test

/* runtime.go
 * Contains the interactive loop that reads commands from stdin. Excluded from
 * test coverage as it blocks on terminal input; the handlers it delegates to are
 * tested in handlers_test.go
 * Authors: Zachary Bower
 */

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
)

// Run reads commands until EOF, quit or an interrupt signal. The context passed
// to handlers is cancelled when the signal arrives so in-flight requests stop too
func (k *Kiosk) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintln(k.Out, "Costume Vote Kiosk. Type help to get started")

	scanner := bufio.NewScanner(os.Stdin)
	prompt := func() { fmt.Fprint(k.Out, "> ") }
	prompt()
	for scanner.Scan() {
		if !k.HandleCommand(ctx, scanner.Text()) {
			break
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		prompt()
	}
	return scanner.Err()
}
