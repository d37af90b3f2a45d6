package state

import (
	"sync"

	"github.com/techcorp/toolspend/internal/models"
)

// DashboardStore owns the analytics snapshot and the recent-tools strip.
// The two fetches are independent and resolve in any order, so each side
// carries its own generation counter.
type DashboardStore struct {
	mu           sync.RWMutex
	analyticsGen uint64
	recentGen    uint64
	analytics    *models.Analytics
	recent       []models.Tool
}

func NewDashboardStore() *DashboardStore {
	return &DashboardStore{}
}

// BeginAnalytics opens a new analytics load generation.
func (s *DashboardStore) BeginAnalytics() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyticsGen++
	return s.analyticsGen
}

// CompleteAnalytics installs an analytics snapshot wholesale. Late
// responses from superseded loads and failed fetches leave the previous
// snapshot in place; the snapshot stays nil until the first success.
func (s *DashboardStore) CompleteAnalytics(gen uint64, analytics *models.Analytics, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.analyticsGen {
		return false
	}
	if err != nil {
		return true
	}
	s.analytics = analytics
	return true
}

// BeginRecent opens a new recent-tools load generation.
func (s *DashboardStore) BeginRecent() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentGen++
	return s.recentGen
}

// CompleteRecent installs the recent-tools strip; failed fetches degrade
// to an empty strip rather than surfacing an error.
func (s *DashboardStore) CompleteRecent(gen uint64, tools []models.Tool, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.recentGen {
		return false
	}
	if err != nil {
		s.recent = []models.Tool{}
		return true
	}
	s.recent = tools
	return true
}

// Analytics returns the current snapshot, nil before the first success.
func (s *DashboardStore) Analytics() *models.Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analytics == nil {
		return nil
	}
	snapshot := *s.analytics
	return &snapshot
}

// Recent returns a copy of the recent-tools strip.
func (s *DashboardStore) Recent() []models.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tool, len(s.recent))
	copy(out, s.recent)
	return out
}
