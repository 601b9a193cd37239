/* handlers.go
 * Contains testable command handlers that write to an io.Writer instead of a
 * real terminal. Command lines are tokenized with splitter so costume and
 * category names containing spaces can be quoted, and names are resolved with
 * fuzzy matching so close is good enough
 * Authors: Zachary Bower
 */

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-andiamo/splitter"

	"costume-vote/app"
	"costume-vote/app/backend"
	"costume-vote/app/logic"
)

// HandleCommand tokenizes and dispatches one command line.
// Postconditions: Returns false when the operator asked to quit, true otherwise.
// Errors are rendered to the output, never returned; the kiosk always survives a
// failed command so the operator can retry
func (k *Kiosk) HandleCommand(ctx context.Context, line string) bool {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	raw, err := spaceSplitter.Split(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintf(k.Out, "Could not read that command: %v\n", err)
		return true
	}

	var tokens []string
	for _, t := range raw {
		t = strings.Trim(t, `"“”`)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return true
	}

	switch tokens[0] {
	case "quit", "exit":
		return false
	case "help":
		k.helpHandler()
	case "reload":
		k.reloadHandler(ctx)
	case "categories":
		k.categoriesHandler(ctx)
	case "entries":
		k.entriesHandler(ctx)
	case "status":
		k.statusHandler(ctx)
	case "vote":
		k.voteHandler(ctx, tokens[1:])
	case "answer":
		k.answerHandler(ctx, tokens[1:])
	case "submit":
		k.submitHandler(ctx)
	case "enter":
		k.enterHandler(ctx, tokens[1:])
	case "results":
		k.resultsHandler(ctx, tokens[1:])
	case "watch":
		k.watchHandler(ctx, tokens[1:])
	case "stop":
		k.App.StopAutoRefresh()
		fmt.Fprintln(k.Out, "Auto refresh stopped")
	case "admin":
		k.adminHandler(ctx, tokens[1:])
	case "search":
		k.searchHandler(ctx, tokens[1:])
	default:
		fmt.Fprintf(k.Out, "Unknown command '%s'. Type help for the command list\n", tokens[0])
	}
	return true
}

// helpHandler prints the command list
func (k *Kiosk) helpHandler() {
	var res strings.Builder
	res.WriteString("Costume Vote Kiosk\n")
	res.WriteString("`reload`: fetch categories, entries and questions from the backend\n")
	res.WriteString("`categories`: list the voting categories and which ones you have picked\n")
	res.WriteString("`entries`: list the costume entries\n")
	res.WriteString("`status`: show your current selections\n")
	res.WriteString("`vote <category> <entry>`: pick an entry for a category. Names with spaces need quotes (e.g. \"Partners in Crime\")\n")
	res.WriteString("`answer <question#> <option#>`: answer a multiple choice question\n")
	res.WriteString("`submit`: send every selection to the backend in one go\n")
	res.WriteString("`enter <name> <costume> <photo path>`: submit a new costume entry with a photo\n")
	res.WriteString("`results <password>`: show the tallied results\n")
	res.WriteString("`watch <password>`: show results and refresh them every 10 seconds, `stop` cancels\n")
	res.WriteString("`admin <password> <subcommand>`: moderation. Subcommands: report, voters, delete/restore <vote|mc-vote|entry> <id>, delete-voter/restore-voter <voter id>\n")
	res.WriteString("`search <query>`: fuzzy search entries by participant or costume name\n")
	res.WriteString("`quit`: leave\n")
	fmt.Fprint(k.Out, res.String())
}

// snapshot returns the loaded voting data, fetching it on first use
func (k *Kiosk) snapshot(ctx context.Context) (*app.VotingData, error) {
	if k.data != nil {
		return k.data, nil
	}
	data, err := k.App.LoadVotingData(ctx)
	if err != nil {
		return nil, err
	}
	k.data = data
	return data, nil
}

// reloadHandler drops the cached snapshot and fetches a fresh one
func (k *Kiosk) reloadHandler(ctx context.Context) {
	k.data = nil
	data, err := k.snapshot(ctx)
	if err != nil {
		k.renderError(err)
		return
	}
	fmt.Fprintf(k.Out, "Loaded %d categories, %d entries, %d questions\n",
		len(data.Categories), len(data.Entries), len(data.Questions))
}

// categoriesHandler lists the categories, marking the ones with a recorded selection
func (k *Kiosk) categoriesHandler(ctx context.Context) {
	data, err := k.snapshot(ctx)
	if err != nil {
		k.renderError(err)
		return
	}
	for _, c := range data.Categories {
		marker := " "
		if _, ok := data.Selected[c.ID]; ok {
			marker = "*"
		}
		fmt.Fprintf(k.Out, "%s %s (%s)\n", marker, c.Name, c.ID)
	}
}

// entriesHandler lists the costume entries
func (k *Kiosk) entriesHandler(ctx context.Context) {
	data, err := k.snapshot(ctx)
	if err != nil {
		k.renderError(err)
		return
	}
	if len(data.Entries) == 0 {
		fmt.Fprintln(k.Out, "No entries yet")
		return
	}
	w := tabwriter.NewWriter(k.Out, 0, 4, 2, ' ', 0)
	for _, e := range data.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, e.CostumeName)
	}
	w.Flush()
}

// statusHandler summarises the recorded selections
func (k *Kiosk) statusHandler(ctx context.Context) {
	data, err := k.snapshot(ctx)
	if err != nil {
		k.renderError(err)
		return
	}
	fmt.Fprintf(k.Out, "You've voted in %d of %d categories\n", len(data.Selected), len(data.Categories))
	for _, c := range data.Categories {
		entryID, ok := data.Selected[c.ID]
		if !ok {
			continue
		}
		name := entryID
		for _, e := range data.Entries {
			if e.ID == entryID {
				name = fmt.Sprintf("%s (%s)", e.Name, e.CostumeName)
				break
			}
		}
		fmt.Fprintf(k.Out, "  %s -> %s\n", c.Name, name)
	}
	fmt.Fprintf(k.Out, "Answered %d of %d questions\n", len(data.SelectedOptions), len(data.Questions))
}

// voteHandler records a selection for a category, resolving both names fuzzily
func (k *Kiosk) voteHandler(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(k.Out, "Usage: vote <category> <entry>")
		return
	}
	data, err := k.snapshot(ctx)
	if err != nil {
		k.renderError(err)
		return
	}

	category, err := logic.MatchCategory(args[0], data.Categories)
	if err != nil {
		k.renderError(err)
		return
	}
	entry, err := logic.MatchEntry(args[1], data.Entries)
	if err != nil {
		k.renderError(err)
		return
	}

	if err := k.App.SelectEntry(category.ID, entry.ID); err != nil {
		k.renderError(err)
		return
	}
	data.Selected[category.ID] = entry.ID
	fmt.Fprintf(k.Out, "Recorded %s for %s. Use submit to send your votes\n", entry.Name, category.Name)
}

// answerHandler records an option for a multiple choice question by 1-based indices
func (k *Kiosk) answerHandler(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(k.Out, "Usage: answer <question#> <option#>")
		return
	}
	data, err := k.snapshot(ctx)
	if err != nil {
		k.renderError(err)
		return
	}

	qIdx, err1 := strconv.Atoi(args[0])
	oIdx, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || qIdx < 1 || qIdx > len(data.Questions) {
		fmt.Fprintln(k.Out, "question# and option# must be numbers from the questions list")
		return
	}
	question := data.Questions[qIdx-1]
	if oIdx < 1 || oIdx > len(question.Options) {
		fmt.Fprintf(k.Out, "option# must be between 1 and %d\n", len(question.Options))
		return
	}
	option := question.Options[oIdx-1]

	if err := k.App.SelectOption(question.ID, option.ID); err != nil {
		k.renderError(err)
		return
	}
	data.SelectedOptions[question.ID] = option.ID
	fmt.Fprintf(k.Out, "Recorded '%s' for '%s'\n", option.OptionText, question.Question)
}

// submitHandler sends every recorded selection to the backend
func (k *Kiosk) submitHandler(ctx context.Context) {
	count, err := k.App.SubmitVotes(ctx)
	if err != nil {
		k.renderError(err)
		return
	}
	if count == 0 {
		fmt.Fprintln(k.Out, "Nothing selected yet, nothing submitted")
		return
	}
	fmt.Fprintf(k.Out, "Your %d votes have been submitted successfully, thank you for participating!\n", count)
	if k.data != nil {
		k.data.Selected = map[string]string{}
		k.data.SelectedOptions = map[string]string{}
	}
}

// enterHandler submits a new costume entry
func (k *Kiosk) enterHandler(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Fprintln(k.Out, "Usage: enter <name> <costume> <photo path>")
		return
	}
	entry, err := k.App.SubmitEntry(ctx, args[0], args[1], args[2])
	if err != nil {
		k.renderError(err)
		return
	}
	fmt.Fprintf(k.Out, "Entry submitted! Your costume \"%s\" has been added to the contest\n", entry.CostumeName)
	k.data = nil
}

// resultsHandler fetches and renders the tallied results
func (k *Kiosk) resultsHandler(ctx context.Context, args []string) {
	password := k.resultsPassword
	if len(args) > 0 {
		password = args[0]
	}
	if password == "" {
		fmt.Fprintln(k.Out, "Usage: results <password>")
		return
	}

	results, err := k.App.FetchRankedResults(ctx, password)
	if err != nil {
		k.renderError(err)
		return
	}
	k.resultsPassword = password
	k.renderResults(results)
}

// watchHandler renders results now and then every 10 seconds until stopped
func (k *Kiosk) watchHandler(ctx context.Context, args []string) {
	k.resultsHandler(ctx, args)
	if k.resultsPassword == "" {
		return
	}
	// The callback runs on the refresh goroutine while the command loop keeps
	// writing kiosk state, so it gets its own copy of the password instead of
	// reading k.resultsPassword
	password := k.resultsPassword
	k.App.StartAutoRefresh(k.RefreshInterval, func(ctx context.Context) {
		results, err := k.App.FetchRankedResults(ctx, password)
		if err != nil {
			k.renderError(err)
			return
		}
		k.renderResults(results)
	})
	fmt.Fprintf(k.Out, "Auto refreshing every %s, type stop to cancel\n", k.RefreshInterval)
}

// adminHandler authenticates and dispatches moderation subcommands
func (k *Kiosk) adminHandler(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(k.Out, "Usage: admin <password> <report|voters|delete|restore|delete-voter|restore-voter> ...")
		return
	}
	password := args[0]

	if k.adminPassword != password {
		if err := k.App.Client.AdminAuth(ctx, password); err != nil {
			k.renderError(err)
			return
		}
		k.adminPassword = password
	}

	switch args[1] {
	case "report":
		k.moderationReportHandler(ctx)
	case "voters":
		k.votersHandler(ctx)
	case "delete", "restore":
		k.moderateRowHandler(ctx, args[1], args[2:])
	case "delete-voter":
		k.moderateVoterHandler(ctx, args[2:], k.App.Client.DeleteVoterVotes, k.App.Client.DeleteVoterMcVotes, "deleted")
	case "restore-voter":
		k.moderateVoterHandler(ctx, args[2:], k.App.Client.RestoreVoterVotes, k.App.Client.RestoreVoterMcVotes, "restored")
	default:
		fmt.Fprintf(k.Out, "Unknown admin subcommand '%s'\n", args[1])
	}
}

// moderationReportHandler renders the dashboard counters and entry listing
func (k *Kiosk) moderationReportHandler(ctx context.Context) {
	report, err := k.App.FetchModerationReport(ctx, k.adminPassword)
	if err != nil {
		k.renderError(err)
		return
	}

	fmt.Fprintf(k.Out, "Entries: %d  Votes: %d  MC votes: %d  Deleted items: %d\n",
		report.Stats.TotalEntries, report.Stats.TotalVotes, report.Stats.TotalMcVotes, report.Stats.DeletedItems)

	w := tabwriter.NewWriter(k.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tCostume\tStatus")
	for _, e := range report.Entries {
		status := logic.StatusActive
		if e.Deleted {
			status = logic.StatusDeleted
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.CostumeName, status)
	}
	w.Flush()
}

// votersHandler renders the per voter groupings with their moderation status
func (k *Kiosk) votersHandler(ctx context.Context) {
	report, err := k.App.FetchModerationReport(ctx, k.adminPassword)
	if err != nil {
		k.renderError(err)
		return
	}

	w := tabwriter.NewWriter(k.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Voter\tVotes\tCategories\tStatus")
	for _, g := range report.VoterGroups {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", shortVoterID(g.VoterID), g.VoteCount, strings.Join(g.Categories, ", "), g.Status())
	}
	for _, g := range report.McVoterGroups {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", shortVoterID(g.VoterID), g.VoteCount, strings.Join(g.Questions, ", "), g.Status())
	}
	w.Flush()
}

// moderateRowHandler deletes or restores a single vote, mc-vote or entry row
func (k *Kiosk) moderateRowHandler(ctx context.Context, verb string, args []string) {
	if len(args) != 2 {
		fmt.Fprintf(k.Out, "Usage: admin <password> %s <vote|mc-vote|entry> <id>\n", verb)
		return
	}
	kind, id := args[0], args[1]

	var err error
	switch {
	case verb == "delete" && kind == "vote":
		err = k.App.Client.DeleteVote(ctx, k.adminPassword, id)
	case verb == "restore" && kind == "vote":
		err = k.App.Client.RestoreVote(ctx, k.adminPassword, id)
	case verb == "delete" && kind == "mc-vote":
		err = k.App.Client.DeleteMcVote(ctx, k.adminPassword, id)
	case verb == "restore" && kind == "mc-vote":
		err = k.App.Client.RestoreMcVote(ctx, k.adminPassword, id)
	case verb == "delete" && kind == "entry":
		err = k.App.Client.DeleteEntry(ctx, k.adminPassword, id)
	case verb == "restore" && kind == "entry":
		err = k.App.Client.RestoreEntry(ctx, k.adminPassword, id)
	default:
		fmt.Fprintf(k.Out, "Unknown kind '%s', expected vote, mc-vote or entry\n", kind)
		return
	}
	if err != nil {
		k.renderError(err)
		return
	}
	fmt.Fprintf(k.Out, "%s %sd\n", kind, verb)
}

// moderateVoterHandler runs a bulk delete or restore over every row of one voter
func (k *Kiosk) moderateVoterHandler(ctx context.Context, args []string,
	votesOp, mcVotesOp func(context.Context, string, string) error, verb string) {
	if len(args) != 1 {
		fmt.Fprintln(k.Out, "Usage: admin <password> delete-voter|restore-voter <voter id>")
		return
	}
	voterID := args[0]
	if err := votesOp(ctx, k.adminPassword, voterID); err != nil {
		k.renderError(err)
		return
	}
	if err := mcVotesOp(ctx, k.adminPassword, voterID); err != nil {
		k.renderError(err)
		return
	}
	fmt.Fprintf(k.Out, "All rows for voter %s %s\n", shortVoterID(voterID), verb)
}

// searchHandler fuzzy searches the loaded entries
func (k *Kiosk) searchHandler(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(k.Out, "Usage: search <query>")
		return
	}
	data, err := k.snapshot(ctx)
	if err != nil {
		k.renderError(err)
		return
	}

	hits := k.App.SearchEntries(strings.Join(args, " "), data.Entries)
	if len(hits) == 0 {
		fmt.Fprintln(k.Out, "No entries found")
		return
	}
	for _, e := range hits {
		fmt.Fprintf(k.Out, "%s: %s (%s)\n", e.ID, e.Name, e.CostumeName)
	}
}

// renderResults prints every category and question block with ranks, counts,
// percentages and the winner trophy
func (k *Kiosk) renderResults(results *app.RankedResults) {
	for _, cat := range results.Categories {
		fmt.Fprintf(k.Out, "== %s ==\n", cat.Category)
		w := tabwriter.NewWriter(k.Out, 0, 4, 2, ' ', 0)
		for _, r := range cat.Results {
			rank := fmt.Sprintf("#%d", r.Rank)
			if r.Winner {
				rank = "🏆"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f%%\n", rank, r.Name, r.CostumeName, pluralVotes(r.VoteCount), r.Percentage)
		}
		w.Flush()
	}
	for _, q := range results.Questions {
		fmt.Fprintf(k.Out, "== %s ==\n", q.Question)
		w := tabwriter.NewWriter(k.Out, 0, 4, 2, ' ', 0)
		for _, r := range q.Options {
			rank := fmt.Sprintf("#%d", r.Rank)
			if r.Winner {
				rank = "🏆"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1f%%\n", rank, r.OptionText, pluralVotes(r.VoteCount), r.Percentage)
		}
		w.Flush()
	}
}

// renderError surfaces a failure without killing the kiosk. Auth and validation
// failures get their own wording; anything else is treated as a network problem
// the operator can retry
func (k *Kiosk) renderError(err error) {
	var validation *backend.ValidationError
	switch {
	case errors.Is(err, backend.ErrAuth):
		fmt.Fprintln(k.Out, "Invalid password. Please try again")
	case errors.As(err, &validation):
		fmt.Fprintf(k.Out, "%s\n", validation.Reason)
	default:
		fmt.Fprintf(k.Out, "Something went wrong, please try again: %v\n", err)
	}
}

// pluralVotes formats a count with the right plural
func pluralVotes(count int) string {
	if count == 1 {
		return "1 vote"
	}
	return fmt.Sprintf("%d votes", count)
}

// shortVoterID truncates the long generated voter ids the way the admin table
// displays them
func shortVoterID(id string) string {
	if id == "" {
		return "Anonymous"
	}
	if len(id) <= 12 {
		return id
	}
	return id[:12] + "..."
}
