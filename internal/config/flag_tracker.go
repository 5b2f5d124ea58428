package config

import (
	"maps"
	"sync"
)

// FlagTracker records which command-line flags the user set explicitly.
// It is safe for concurrent use.
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates an empty tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{flags: make(map[string]bool)}
}

// NewFlagTrackerWithFlags creates a tracker holding a copy of flags
func NewFlagTrackerWithFlags(flags map[string]bool) *FlagTracker {
	ft := NewFlagTracker()
	maps.Copy(ft.flags, flags)
	return ft
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(flagName string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags[flagName] = true
}

// WasSet checks if a flag was explicitly set
func (ft *FlagTracker) WasSet(flagName string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[flagName]
}

// GetAll returns a copy of all flags
func (ft *FlagTracker) GetAll() map[string]bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return maps.Clone(ft.flags)
}
