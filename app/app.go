/* app.go
 * This file contains the public methods for interacting with this package. The App
 * is the explicit session object of a voting client: it owns the device local
 * store, the backend client and the photo cache, and every operation hangs off it
 * instead of package level state. Lifecycle is NewApp -> methods -> Close.
 * Submission and auto refresh live in submit.go and refresh.go
 * Authors: Zachary Bower
 */

package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"costume-vote/app/backend"
	"costume-vote/app/imagecache"
	"costume-vote/app/logic"
	"costume-vote/app/shared"
	"costume-vote/app/store"
)

// Config carries the values needed to build an App
type Config struct {
	BackendURL string
	DataDir    string
	TopRanks   int // results are cut to this rank, 0 shows everything
}

// App provides methods for interacting with the costume contest data layer
type App struct {
	Store  store.Interface
	Client *backend.Client
	Images *imagecache.Cache

	topRanks int

	mu            sync.Mutex
	refreshCancel context.CancelFunc
	refreshDone   chan struct{}
}

// NewApp creates a new App instance with the provided configuration
func NewApp(cfg Config) (*App, error) {
	if cfg.BackendURL == "" || cfg.DataDir == "" {
		return nil, fmt.Errorf("backendURL and dataDir are required")
	}

	s, err := store.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	images, err := imagecache.New(filepath.Join(cfg.DataDir, "images"))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to initialize image cache: %w", err)
	}

	return &App{
		Store:    s,
		Client:   backend.NewClient(cfg.BackendURL),
		Images:   images,
		topRanks: cfg.TopRanks,
	}, nil
}

// Close disposes the session: the auto refresh timer is cancelled and the local
// store is released. Safe to call once at teardown
func (a *App) Close() error {
	a.StopAutoRefresh()
	return a.Store.Close()
}

// LoadVotingData fetches the voting snapshot from the backend and merges in this
// device's persisted selections.
// Postconditions: Returns categories sorted by display order, voter visible
// entries, the multiple choice questions and the saved selections (empty maps
// when nothing was saved), or an error if any fetch fails
func (a *App) LoadVotingData(ctx context.Context) (*VotingData, error) {
	voterID, err := a.Store.VoterID()
	if err != nil {
		return nil, err
	}

	categories, err := a.Client.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := a.Client.FetchEntries(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := a.Client.FetchMcQuestions(ctx)
	if err != nil {
		return nil, err
	}

	selected, selectedOptions, err := a.Store.LoadVotes()
	if err != nil {
		return nil, err
	}

	return &VotingData{
		VoterID:         voterID,
		Categories:      categories,
		Entries:         entries,
		Questions:       questions,
		Selected:        selected,
		SelectedOptions: selectedOptions,
	}, nil
}

// SelectEntry records the chosen entry for a category on this device. Last write
// wins and the selection is persisted before returning; nothing is sent to the
// backend until SubmitVotes
func (a *App) SelectEntry(categoryID, entryID string) error {
	return a.Store.RecordVote(categoryID, entryID)
}

// SelectOption records the chosen option for a multiple choice question on this
// device, with the same semantics as SelectEntry
func (a *App) SelectOption(questionID, optionID string) error {
	return a.Store.RecordMcVote(questionID, optionID)
}

// FetchRankedResults gets the tallied results and runs the ranking pipeline over
// every category and question.
// Postconditions: Returns results ranked with competition ranking, percentages
// computed over all options before the top rank cut, winners marked only where
// votes exist. Returns backend.ErrAuth for a bad password
func (a *App) FetchRankedResults(ctx context.Context, password string) (*RankedResults, error) {
	payload, err := a.Client.FetchResults(ctx, password)
	if err != nil {
		return nil, err
	}

	ranked := &RankedResults{}
	for _, cat := range payload.CategoryResults {
		ranked.Categories = append(ranked.Categories, RankedCategory{
			Category: cat.Category,
			Results:  logic.FinalizeCategoryResults(cat.Results, a.topRanks),
		})
	}
	for _, q := range payload.McResults {
		ranked.Questions = append(ranked.Questions, RankedQuestion{
			QuestionID: q.QuestionID,
			Question:   q.Question,
			Options:    logic.FinalizeMcResults(q.Options, a.topRanks),
		})
	}
	return ranked, nil
}

// FetchModerationReport gets the full admin listings and derives the per voter
// groups and dashboard counters consumed by the moderation view
func (a *App) FetchModerationReport(ctx context.Context, password string) (*ModerationReport, error) {
	entries, err := a.Client.FetchAdminEntries(ctx, password)
	if err != nil {
		return nil, err
	}
	votes, err := a.Client.FetchAdminVotes(ctx, password)
	if err != nil {
		return nil, err
	}
	mcVotes, err := a.Client.FetchAdminMcVotes(ctx, password)
	if err != nil {
		return nil, err
	}

	categories, err := a.Client.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	stats := ModerationStats{
		TotalEntries: len(entries),
		TotalVotes:   len(votes),
		TotalMcVotes: len(mcVotes),
	}
	for _, e := range entries {
		if e.Deleted {
			stats.DeletedItems++
		}
	}
	for _, v := range votes {
		if v.Deleted {
			stats.DeletedItems++
		}
	}
	for _, v := range mcVotes {
		if v.Deleted {
			stats.DeletedItems++
		}
	}

	return &ModerationReport{
		Entries:       entries,
		Votes:         votes,
		McVotes:       mcVotes,
		VoterGroups:   logic.GroupVotesByVoter(votes, categoryNames),
		McVoterGroups: logic.GroupMcVotesByVoter(mcVotes),
		Stats:         stats,
	}, nil
}

// SearchEntries fuzzy searches the admin entry listing by participant or costume name
func (a *App) SearchEntries(query string, entries []shared.Entry) []shared.Entry {
	return logic.SearchEntries(query, entries)
}

// EntryPhoto resolves an entry's photo to a local file path through the memoized
// cache. Relative photo URLs are resolved against the backend base URL
func (a *App) EntryPhoto(entry shared.Entry) string {
	url := entry.PhotoURL
	if len(url) > 0 && url[0] == '/' {
		url = a.Client.BaseURL + url
	}
	return a.Images.Get(url)
}
