// Package update performs the startup version check against GitHub Releases.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const releaseURL = "https://api.github.com/repos/PalmTreeDream/Asset-hunter-sub000/releases/latest"

// Result reports that a newer release exists.
type Result struct {
	LatestVersion string
}

type ghRelease struct {
	TagName string `json:"tag_name"`
}

// Check compares the running version against the latest published release.
// It returns nil when up to date and on any error; an update hint is never
// worth failing a scan over.
func Check(ctx context.Context, currentVersion string) *Result {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release ghRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")
	if latest == "" || latest == current {
		return nil
	}
	return &Result{LatestVersion: latest}
}
