package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/repository"
)

// ZReportScheduler fires each restaurant's Z report at 05:00 in the
// restaurant's own timezone. It checks once a minute and remembers the last
// fiscal day it closed per restaurant, so a report is generated exactly once
// per rollover even when ticks jitter.
type ZReportScheduler struct {
	restaurantRepo repository.RestaurantRepository
	reportService  *ReportService
	interval       time.Duration

	mu      sync.Mutex
	lastRun map[uuid.UUID]string
}

// NewZReportScheduler creates a new Z report scheduler
func NewZReportScheduler(restaurantRepo repository.RestaurantRepository, reportService *ReportService) *ZReportScheduler {
	return &ZReportScheduler{
		restaurantRepo: restaurantRepo,
		reportService:  reportService,
		interval:       time.Minute,
		lastRun:        make(map[uuid.UUID]string),
	}
}

// Start runs the scheduler loop until ctx is cancelled.
func (s *ZReportScheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *ZReportScheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *ZReportScheduler) tick(ctx context.Context, now time.Time) {
	restaurants, err := s.restaurantRepo.List(ctx)
	if err != nil {
		log.Printf("scheduler: listing restaurants failed: %v", err)
		return
	}

	for _, restaurant := range restaurants {
		day, due := fiscalDayDue(now, restaurant.Timezone)
		if !due {
			continue
		}
		if !s.claim(restaurant.ID, day) {
			continue
		}
		if err := s.reportService.RunScheduledZReport(ctx, restaurant.ID); err != nil {
			log.Printf("scheduler: Z report for restaurant %s failed: %v", restaurant.ID, err)
		}
	}
}

// claim records the fiscal day as handled for the restaurant, reporting
// whether this call was the first to do so.
func (s *ZReportScheduler) claim(restaurantID uuid.UUID, day string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRun[restaurantID] == day {
		return false
	}
	s.lastRun[restaurantID] = day
	return true
}

// fiscalDayDue reports whether the restaurant's 05:00 rollover has passed
// for the local day, returning that day as the dedup key. The hour-wide
// check tolerates missed ticks around the boundary.
func fiscalDayDue(now time.Time, timezone string) (string, bool) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", false
	}
	local := now.In(loc)
	if local.Hour() != fiscalDayStartHour {
		return "", false
	}
	return local.Format("2006-01-02"), true
}
