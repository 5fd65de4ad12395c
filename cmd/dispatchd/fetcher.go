package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lifeline-ems/fleet-dispatch/avl"
)

// fetcher resolves AVL documents from URLs or local files. HTTP sources go
// through the AVL client; anything else is read off disk, so both oneshot
// and serve mode accept a .pb or .json path in place of a URL.
type fetcher struct {
	client *avl.Client
}

func newFetcher(timeout time.Duration) *fetcher {
	return &fetcher{client: avl.NewClient(timeout)}
}

// fetch fetches one document from a URL or file path and returns raw bytes.
// Returns nil if urlOrPath is empty (allows optional documents).
func (f *fetcher) fetch(urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, nil
	}

	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	return f.client.Fetch(urlOrPath)
}

// fetchAll fetches the vehicle-positions feed and the optional roster.
func (f *fetcher) fetchAll(vehiclePositionsPath, rosterPath string) ([]byte, []byte, error) {
	vp, err := f.fetch(vehiclePositionsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("vehicle positions: %w", err)
	}

	roster, err := f.fetch(rosterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("roster: %w", err)
	}

	return vp, roster, nil
}
