/* kiosk.go
 * Contains the Kiosk struct and constructor. The kiosk is the render surface of
 * the voting client: it turns typed commands into App calls and prints the
 * results. It holds only view state (the loaded snapshot and the passwords the
 * operator has entered); all business rules live in the app packages
 * Authors: Zachary Bower
 */

package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"costume-vote/app"
)

type Kiosk struct {
	App *app.App
	Out io.Writer

	// RefreshInterval is how often watch re-fetches results
	RefreshInterval time.Duration

	data            *app.VotingData
	adminPassword   string
	resultsPassword string
}

// NewKiosk creates a kiosk over the given app. The results password can be
// pre-seeded through RESULTS_PASSWORD so an unattended display does not need it
// typed; the admin password is always typed and verified
func NewKiosk(a *app.App, out io.Writer) (*Kiosk, error) {
	if a == nil {
		return nil, fmt.Errorf("app is required but none was provided")
	}
	return &Kiosk{
		App:             a,
		Out:             out,
		RefreshInterval: 10 * time.Second,
		resultsPassword: os.Getenv("RESULTS_PASSWORD"),
	}, nil
}
