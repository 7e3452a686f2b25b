package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/devusSs/hostbridge/internal/httplib"
	"github.com/devusSs/hostbridge/pkg/log"
	"github.com/devusSs/hostbridge/pkg/system"
)

// Custom errors
var (
	ErrNoMatchingRelease = errors.New("no matching release found")
)

// Config for the updater
type Config struct {
	// GitHub repository slug, e.g. "owner/name"
	Repository   string
	Token        string
	BuildVersion string
	Console      bool
	Debug        bool
}

// Updater checks GitHub releases for newer builds of this binary
type Updater struct {
	repository   string
	token        string
	buildVersion string
	apiURL       string
	interval     time.Duration

	logger *log.Logger
}

// Release is the subset of a GitHub release the updater needs
type Release struct {
	Version   string
	AssetURL  string
	Changelog string
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// CheckAndApply updates the running binary if a newer release exists.
//
// Returns true if the binary was replaced and the app should be restarted.
func (u *Updater) CheckAndApply(ctx context.Context) (bool, error) {
	if u.DevBuild() {
		u.logger.Debug("skipping update check for dev build")
		return false, nil
	}

	release, err := u.findLatestRelease(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to find latest release: %w", err)
	}

	newer, err := newerVersionAvailable(release.Version, u.buildVersion)
	if err != nil {
		return false, fmt.Errorf("failed to compare versions: %w", err)
	}
	if !newer {
		u.logger.Debug("running latest version %s", u.buildVersion)
		return false, nil
	}

	if err := doUpdate(release.AssetURL); err != nil {
		return false, fmt.Errorf("failed to update: %w", err)
	}

	u.logger.Info("Updated to %s, changelog:\n%s", release.Version, release.Changelog)

	return true, nil
}

// DevBuild reports whether the binary was built without a release version
func (u *Updater) DevBuild() bool {
	return u.buildVersion == devVersion
}

// PeriodicCheck periodically looks for new releases and sends
// the new version on available
//
// Blocking until context is canceled, returns right away for dev builds
func (u *Updater) PeriodicCheck(ctx context.Context, available chan<- string, wg *sync.WaitGroup) {
	defer wg.Done()

	if u.DevBuild() {
		u.logger.Debug("skipping periodic update check for dev build")
		return
	}

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			release, err := u.findLatestRelease(ctx)
			if err != nil {
				u.logger.Warn("Failed to find latest release: %v", err)
				continue
			}
			newer, err := newerVersionAvailable(release.Version, u.buildVersion)
			if err != nil {
				u.logger.Warn("Failed to compare versions: %v", err)
				continue
			}
			if newer {
				select {
				case available <- release.Version:
				default:
				}
			}
		}
	}
}

// Queries the latest release and picks the asset built for this host
func (u *Updater) findLatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", u.apiURL, u.repository)

	var release githubRelease
	if err := httplib.GetJSON(ctx, url, u.token, &release); err != nil {
		return nil, err
	}

	for _, asset := range release.Assets {
		if !assetMatches(asset.Name, system.OS(), system.Arch()) {
			continue
		}
		return &Release{
			Version:   release.TagName,
			AssetURL:  asset.BrowserDownloadURL,
			Changelog: formatChangelog(release.Body),
		}, nil
	}

	return nil, ErrNoMatchingRelease
}

// Release assets are named after uname style architectures
func assetMatches(name string, goos string, goarch string) bool {
	switch goarch {
	case "amd64":
		goarch = "x86_64"
	case "386":
		goarch = "i386"
	}
	name = strings.ToLower(name)
	return strings.Contains(name, goos) && strings.Contains(name, goarch)
}

func formatChangelog(body string) string {
	lines := strings.Split(
		strings.ReplaceAll(strings.TrimSpace(body), "## Changelog", ""),
		"\n",
	)
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(fmt.Sprintf("\t%s", strings.TrimSpace(line)), "*", "-")
	}
	return strings.Join(lines, "\n")
}

// Compare current version with latest version
func newerVersionAvailable(newVersion string, buildVersion string) (bool, error) {
	vOld, err := semver.NewVersion(buildVersion)
	if err != nil {
		return false, err
	}
	vNew, err := semver.NewVersion(newVersion)
	if err != nil {
		return false, err
	}
	return vOld.LessThan(vNew), nil
}

// Perform the actual patch.
func doUpdate(url string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return selfupdate.UpdateTo(url, exe)
}

// New creates a new updater
func New(cfg Config) *Updater {
	logger := log.NewLogger(
		log.WithName("update"),
		log.WithConsole(cfg.Console),
		log.WithDebug(cfg.Debug),
	)

	return &Updater{
		repository:   cfg.Repository,
		token:        cfg.Token,
		buildVersion: cfg.BuildVersion,
		apiURL:       githubAPIURL,
		interval:     time.Hour,
		logger:       logger,
	}
}

const (
	githubAPIURL = "https://api.github.com"
	devVersion   = "dev"
)
