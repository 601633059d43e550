// Package sweep implements the expiry scraper that runs alongside the lock
// engine. The engine itself never expires anything; sweep scans a lock
// directory, reads the expiry metadata callers put in their payloads, and
// deletes lock files whose time has passed.
package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/latch-project/latch/pkg/codec"
	"github.com/latch-project/latch/pkg/logging"
	"github.com/latch-project/latch/pkg/model"
	"github.com/latch-project/latch/pkg/pathutil"
)

// DefaultExpireKey is the payload key the scraper reads expiry times from.
const DefaultExpireKey = "expire"

// expireLayouts are the accepted textual timestamp forms, tried in order.
var expireLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Entry describes one lock file found during a scan.
type Entry struct {
	Object    string
	Path      string
	Payload   map[string]any
	ExpiresAt time.Time // zero when the payload carries no parseable expiry
	Malformed bool      // file did not parse; never deleted
}

// Report summarizes a sweep run.
type Report struct {
	Scanned   int
	Expired   []string // lock file paths whose expiry has passed
	Removed   []string // subset of Expired actually deleted (all, unless dry run)
	Malformed []string // unparsable lock files, skipped
}

// Sweeper scans lock directories and removes expired lock files.
type Sweeper struct {
	codec     codec.Codec
	expireKey string
}

// NewSweeper creates a sweeper. A nil codec selects YAML; an empty expireKey
// selects DefaultExpireKey.
func NewSweeper(c codec.Codec, expireKey string) *Sweeper {
	if c == nil {
		c = codec.YAML{}
	}
	if expireKey == "" {
		expireKey = DefaultExpireKey
	}
	return &Sweeper{codec: c, expireKey: expireKey}
}

// Scan lists every lock file in dir with its parsed payload and expiry.
// Results are ordered by object name.
func (s *Sweeper) Scan(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read lock dir: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), pathutil.LockSuffix) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		entry := Entry{
			Object: strings.TrimSuffix(de.Name(), pathutil.LockSuffix),
			Path:   path,
		}

		data, err := os.ReadFile(path)
		if err != nil {
			// Deleted between ReadDir and ReadFile; nothing to sweep.
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read lock file %s: %w", path, err)
		}

		doc, perr := s.codec.Unmarshal(data)
		if len(data) == 0 || perr != nil {
			entry.Malformed = true
			entries = append(entries, entry)
			continue
		}

		entry.Payload = model.StripReserved(doc)
		entry.ExpiresAt = parseExpiry(entry.Payload[s.expireKey])
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Object < entries[j].Object })
	return entries, nil
}

// Run scans dir and deletes every lock file whose expiry is before now.
// Malformed files and files without expiry metadata are left alone. With
// dryRun the report lists what would be removed without touching anything.
func (s *Sweeper) Run(dir string, now time.Time, dryRun bool) (*Report, error) {
	entries, err := s.Scan(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{Scanned: len(entries)}
	for _, entry := range entries {
		if entry.Malformed {
			report.Malformed = append(report.Malformed, entry.Path)
			logging.Warn("skipping malformed lock file", map[string]any{"path": entry.Path})
			continue
		}
		if entry.ExpiresAt.IsZero() || !entry.ExpiresAt.Before(now) {
			continue
		}

		report.Expired = append(report.Expired, entry.Path)
		if dryRun {
			continue
		}
		if err := os.Remove(entry.Path); err != nil && !os.IsNotExist(err) {
			logging.ErrorErr("failed to remove expired lock file", err, map[string]any{"path": entry.Path})
			continue
		}
		report.Removed = append(report.Removed, entry.Path)
		logging.Info("removed expired lock file", map[string]any{
			"path":    entry.Path,
			"object":  entry.Object,
			"expired": entry.ExpiresAt.Format(time.RFC3339),
		})
	}

	return report, nil
}

// parseExpiry extracts a timestamp from an expiry payload value. YAML already
// decodes unquoted timestamps to time.Time; quoted values arrive as strings.
func parseExpiry(val any) time.Time {
	switch v := val.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range expireLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts
			}
		}
	}
	return time.Time{}
}
