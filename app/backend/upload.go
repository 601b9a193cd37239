/* upload.go
 * Contains entry submission: client side photo validation followed by a multipart
 * upload. Validation failures never reach the network
 * Authors: Zachary Bower
 */

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"costume-vote/app/shared"
)

// MaxPhotoBytes is the upload size limit enforced before any network call
const MaxPhotoBytes = 5 * 1024 * 1024

// allowedPhotoTypes are the accepted photo MIME types, checked by content
// sniffing rather than trusting the file extension
var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ValidatePhoto checks the photo file before upload.
// Preconditions: Receives the path of the photo on local disk
// Postconditions: Returns nil when the file exists, is within the size limit and
// sniffs as an allowed image type; otherwise returns a *ValidationError (or an I/O
// error when the file cannot be inspected at all)
func ValidatePhoto(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("photo file not readable: %v", err)}
	}
	if info.Size() > MaxPhotoBytes {
		return &ValidationError{Reason: fmt.Sprintf("file is too large, maximum size is %dMB", MaxPhotoBytes/1024/1024)}
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to inspect photo: %w", err)
	}
	for _, allowed := range allowedPhotoTypes {
		if mtype.Is(allowed) {
			return nil
		}
	}
	return &ValidationError{Reason: fmt.Sprintf("invalid file type %s, please upload a JPG, PNG, GIF or WEBP image", mtype.String())}
}

// SubmitEntry validates and uploads a new costume entry.
// Preconditions: Receives the participant name, the costume name and the local
// path of the photo
// Postconditions: Returns the created entry, or a *ValidationError before any
// network I/O when the input is rejected, or another error if the upload fails
func (c *Client) SubmitEntry(ctx context.Context, name, costumeName, photoPath string) (*shared.Entry, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(costumeName) == "" {
		return nil, &ValidationError{Reason: "please fill in both the participant name and the costume name"}
	}
	if err := ValidatePhoto(photoPath); err != nil {
		return nil, err
	}

	photo, err := os.Open(photoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer photo.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("name", name); err != nil {
		return nil, err
	}
	if err := writer.WriteField("costume_name", costumeName); err != nil {
		return nil, err
	}
	part, err := writer.CreateFormFile("photo", filepath.Base(photoPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, photo); err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/entries", &body)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	response, err := c.do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	var entry shared.Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	return &entry, nil
}
