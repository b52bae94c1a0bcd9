package monitor

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"mesongui/meson"
)

// LatestReleaseURL is the page that redirects to meson's newest release.
const LatestReleaseURL = "https://github.com/mesonbuild/meson/releases/latest"

// ReleaseMonitor checks for newer meson releases
type ReleaseMonitor struct {
	client *http.Client
	url    string
}

// NewReleaseMonitor creates a release monitor for the official meson repository
func NewReleaseMonitor() *ReleaseMonitor {
	return NewReleaseMonitorAt(LatestReleaseURL, &http.Client{
		Timeout: 30 * time.Second,
	})
}

// NewReleaseMonitorAt creates a release monitor that scrapes url.
func NewReleaseMonitorAt(url string, client *http.Client) *ReleaseMonitor {
	return &ReleaseMonitor{client: client, url: url}
}

// UpdateInfo contains information about available updates
type UpdateInfo struct {
	HasUpdate bool
	Installed string
	Latest    string
	URL       string
}

// Description renders the comparison for the console.
func (u *UpdateInfo) Description() string {
	if u.HasUpdate {
		return fmt.Sprintf("meson %s is available (installed: %s)\n%s", u.Latest, u.Installed, u.URL)
	}
	return fmt.Sprintf("meson %s is up to date (latest release: %s)", u.Installed, u.Latest)
}

// Check compares the output of meson --version with the latest release.
func (m *ReleaseMonitor) Check(ctx context.Context, versionOutput string) (*UpdateInfo, error) {
	installed, err := meson.ParseVersion(versionOutput)
	if err != nil {
		return nil, fmt.Errorf("installed version: %w", err)
	}

	latest, url, err := m.Latest(ctx)
	if err != nil {
		return nil, err
	}

	return &UpdateInfo{
		HasUpdate: meson.Newer(latest, installed),
		Installed: installed,
		Latest:    latest,
		URL:       url,
	}, nil
}

// Latest returns the newest release version and the URL it was found at.
func (m *ReleaseMonitor) Latest(ctx context.Context) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch release page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("release page returned status %d", resp.StatusCode)
	}

	finalURL := m.url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	// GitHub redirects .../releases/latest to .../releases/tag/<version>
	if strings.Contains(finalURL, "/releases/tag/") {
		if v, err := meson.ParseVersion(path.Base(finalURL)); err == nil {
			return v, finalURL, nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("parse release page: %w", err)
	}

	version := m.extractVersionFromPage(doc)
	if version == "" {
		return "", "", fmt.Errorf("no release version found at %s", finalURL)
	}
	log.WithFields(log.Fields{"version": version, "url": finalURL}).Debug("found latest meson release")
	return version, finalURL, nil
}

// extractVersionFromPage tries the release heading first, then the page
// title, then any link into a release tag.
func (m *ReleaseMonitor) extractVersionFromPage(doc *goquery.Document) string {
	var found string

	for _, selector := range []string{"h1", "title"} {
		doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
			if v, err := meson.ParseVersion(s.Text()); err == nil {
				found = v
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	doc.Find("a[href*='/releases/tag/']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if v, err := meson.ParseVersion(path.Base(href)); err == nil {
			found = v
			return false
		}
		return true
	})
	return found
}
