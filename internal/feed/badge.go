package feed

import (
	"fmt"
	"sort"
	"sync"
)

// BadgeCDN is the base of the static badge image URLs.
const BadgeCDN = "https://static-cdn.jtvnw.net/badges/v1"

// BadgeURL builds the 1x image URL for a badge id and version.
func BadgeURL(id, version string) string {
	return fmt.Sprintf("%s/%s/%s/1", BadgeCDN, id, version)
}

// BadgeVersion is one version of a badge set as returned by Helix.
type BadgeVersion struct {
	ID         string
	ImageURL1x string
	Title      string
}

// BadgeSet groups the versions of one badge, e.g. all subscriber months.
type BadgeSet struct {
	SetID    string
	Versions []BadgeVersion
}

// BadgeCache resolves badge references to display badges. Channel badges take
// precedence over global ones. It is safe for concurrent use: adapters fill it
// from a background fetch while chat events are being resolved.
type BadgeCache struct {
	mu      sync.RWMutex
	channel map[string]map[string]BadgeVersion
	global  map[string]map[string]BadgeVersion
}

// NewBadgeCache creates an empty cache.
func NewBadgeCache() *BadgeCache {
	return &BadgeCache{
		channel: make(map[string]map[string]BadgeVersion),
		global:  make(map[string]map[string]BadgeVersion),
	}
}

// AddChannel stores channel-specific badge sets.
func (c *BadgeCache) AddChannel(sets []BadgeSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	addSets(c.channel, sets)
}

// AddGlobal stores global badge sets.
func (c *BadgeCache) AddGlobal(sets []BadgeSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	addSets(c.global, sets)
}

func addSets(dst map[string]map[string]BadgeVersion, sets []BadgeSet) {
	for _, set := range sets {
		versions := make(map[string]BadgeVersion, len(set.Versions))
		for _, v := range set.Versions {
			versions[v.ID] = v
		}
		dst[set.SetID] = versions
	}
}

// Len returns the number of cached badge sets across both scopes.
func (c *BadgeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.channel) + len(c.global)
}

func (c *BadgeCache) lookup(setID, version string) (BadgeVersion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.channel[setID][version]; ok {
		return v, true
	}
	if v, ok := c.global[setID][version]; ok {
		return v, true
	}
	return BadgeVersion{}, false
}

// Resolve returns the display badge for a set/version pair. Unknown badges
// fall back to the CDN URL convention with the set id as title.
func (c *BadgeCache) Resolve(setID, version string) Badge {
	if v, ok := c.lookup(setID, version); ok {
		return Badge{ID: setID, Version: version, ImageURL: v.ImageURL1x, Title: v.Title}
	}
	return Badge{ID: setID, Version: version, ImageURL: BadgeURL(setID, version), Title: setID}
}

// ResolveAll resolves a set→version map, ordered by set id so the output is
// deterministic.
func (c *BadgeCache) ResolveAll(badges map[string]string) []Badge {
	if len(badges) == 0 {
		return nil
	}
	ids := make([]string, 0, len(badges))
	for id := range badges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Badge, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Resolve(id, badges[id]))
	}
	return out
}
