/* admin.go
 * Contains the password protected admin endpoints: authentication, full record
 * listings including soft deleted rows, and the delete/restore mutations for
 * single rows and for all rows of one voter. Delete and restore are idempotent on
 * the server, repeating one is a no-op rather than an error
 * Authors: Zachary Bower
 */

package backend

import (
	"context"
	"fmt"
	"net/url"

	"costume-vote/app/shared"
)

type adminAuthRequest struct {
	Password string `json:"password"`
}

// AdminAuth verifies the admin password.
// Postconditions: Returns nil on success, ErrAuth when the password is rejected,
// or another error when the request itself fails
func (c *Client) AdminAuth(ctx context.Context, password string) error {
	return c.postJSON(ctx, "/api/admin/auth", adminAuthRequest{Password: password}, nil)
}

// FetchAdminEntries gets every entry including soft deleted ones
func (c *Client) FetchAdminEntries(ctx context.Context, password string) ([]shared.Entry, error) {
	var entries []shared.Entry
	path := "/api/admin/entries?password=" + url.QueryEscape(password)
	if err := c.getJSON(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchAdminVotes gets every costume vote row including soft deleted ones, with
// entry display fields joined in
func (c *Client) FetchAdminVotes(ctx context.Context, password string) ([]shared.AdminVote, error) {
	var votes []shared.AdminVote
	path := "/api/admin/votes?password=" + url.QueryEscape(password)
	if err := c.getJSON(ctx, path, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// FetchAdminMcVotes gets every multiple choice vote row including soft deleted ones
func (c *Client) FetchAdminMcVotes(ctx context.Context, password string) ([]shared.AdminMcVote, error) {
	var votes []shared.AdminMcVote
	path := "/api/admin/mc-votes?password=" + url.QueryEscape(password)
	if err := c.getJSON(ctx, path, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// moderate posts the admin password to a delete or restore endpoint
func (c *Client) moderate(ctx context.Context, password, path string) error {
	return c.postJSON(ctx, path, adminAuthRequest{Password: password}, nil)
}

// DeleteEntry soft deletes one entry, hiding it from voter facing views
func (c *Client) DeleteEntry(ctx context.Context, password, entryID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/entries/%s/delete", url.PathEscape(entryID)))
}

// RestoreEntry undoes a soft delete of one entry
func (c *Client) RestoreEntry(ctx context.Context, password, entryID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/entries/%s/restore", url.PathEscape(entryID)))
}

// DeleteVote soft deletes one costume vote row
func (c *Client) DeleteVote(ctx context.Context, password, voteID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/votes/%s/delete", url.PathEscape(voteID)))
}

// RestoreVote undoes a soft delete of one costume vote row
func (c *Client) RestoreVote(ctx context.Context, password, voteID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/votes/%s/restore", url.PathEscape(voteID)))
}

// DeleteMcVote soft deletes one multiple choice vote row
func (c *Client) DeleteMcVote(ctx context.Context, password, voteID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/mc-votes/%s/delete", url.PathEscape(voteID)))
}

// RestoreMcVote undoes a soft delete of one multiple choice vote row
func (c *Client) RestoreMcVote(ctx context.Context, password, voteID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/mc-votes/%s/restore", url.PathEscape(voteID)))
}

// DeleteVoterVotes soft deletes every costume vote row cast by one voter
func (c *Client) DeleteVoterVotes(ctx context.Context, password, voterID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/votes/voter/%s/delete", url.PathEscape(voterID)))
}

// RestoreVoterVotes restores every costume vote row cast by one voter
func (c *Client) RestoreVoterVotes(ctx context.Context, password, voterID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/votes/voter/%s/restore", url.PathEscape(voterID)))
}

// DeleteVoterMcVotes soft deletes every multiple choice vote row cast by one voter
func (c *Client) DeleteVoterMcVotes(ctx context.Context, password, voterID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/mc-votes/voter/%s/delete", url.PathEscape(voterID)))
}

// RestoreVoterMcVotes restores every multiple choice vote row cast by one voter
func (c *Client) RestoreVoterMcVotes(ctx context.Context, password, voterID string) error {
	return c.moderate(ctx, password, fmt.Sprintf("/api/admin/mc-votes/voter/%s/restore", url.PathEscape(voterID)))
}
