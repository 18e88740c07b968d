package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"
)

// TrustedClock resolves an offset between the device clock and a network
// time source so date logic survives casual local-clock tampering. When no
// source can be reached the offset stays zero and the clock silently falls
// back to device time.
type TrustedClock struct {
	originURL    string
	timeAPIURL   string
	client       *http.Client
	offsetMillis int64
	resolved     int32
}

// worldTimeResponse is the shape of the fallback time API payload.
type worldTimeResponse struct {
	Datetime string `json:"datetime"`
}

const timeProbeTimeout = 2 * time.Second

func NewTrustedClock(originURL, timeAPIURL string) *TrustedClock {
	return &TrustedClock{
		originURL:  originURL,
		timeAPIURL: timeAPIURL,
		client:     &http.Client{Timeout: timeProbeTimeout},
	}
}

// Resolve attempts the offset resolution once. It is a no-op after a
// successful resolution; callers may retry while Resolved() is still false.
func (tc *TrustedClock) Resolve(ctx context.Context) {
	if tc.Resolved() {
		return
	}

	// Method 1: HEAD probe against our own origin, reading the Date header.
	if tc.originURL != "" {
		if serverTime, ok := tc.probeOriginHeader(ctx); ok {
			tc.setOffset(serverTime)
			log.Printf("Time synced via origin header, offset %dms", atomic.LoadInt64(&tc.offsetMillis))
			return
		}
		log.Println("Header time sync failed, trying API fallback")
	}

	// Method 2: external time API fallback.
	if tc.timeAPIURL != "" {
		if serverTime, ok := tc.probeTimeAPI(ctx); ok {
			tc.setOffset(serverTime)
			log.Printf("Time synced via API, offset %dms", atomic.LoadInt64(&tc.offsetMillis))
			return
		}
	}

	// Both failed: keep offset zero and run on unverified device time.
	log.Println("Time sync failed, using device time fallback")
}

func (tc *TrustedClock) probeOriginHeader(ctx context.Context) (time.Time, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, tc.originURL, nil)
	if err != nil {
		return time.Time{}, false
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := tc.client.Do(req)
	if err != nil {
		return time.Time{}, false
	}
	defer resp.Body.Close()

	dateHeader := resp.Header.Get("Date")
	if dateHeader == "" {
		return time.Time{}, false
	}
	serverTime, err := http.ParseTime(dateHeader)
	if err != nil {
		return time.Time{}, false
	}
	return serverTime, true
}

func (tc *TrustedClock) probeTimeAPI(ctx context.Context) (time.Time, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.timeAPIURL, nil)
	if err != nil {
		return time.Time{}, false
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return time.Time{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, false
	}

	var payload worldTimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return time.Time{}, false
	}
	serverTime, err := time.Parse(time.RFC3339, payload.Datetime)
	if err != nil {
		return time.Time{}, false
	}
	return serverTime, true
}

func (tc *TrustedClock) setOffset(serverTime time.Time) {
	offset := serverTime.UnixMilli() - time.Now().UnixMilli()
	atomic.StoreInt64(&tc.offsetMillis, offset)
	atomic.StoreInt32(&tc.resolved, 1)
}

// Resolved reports whether a network time source was reached.
func (tc *TrustedClock) Resolved() bool {
	return atomic.LoadInt32(&tc.resolved) == 1
}

// Now returns the offset-corrected current time. The offset is applied at
// call time so continued device-clock drift keeps being corrected.
func (tc *TrustedClock) Now() time.Time {
	return time.Now().Add(time.Duration(atomic.LoadInt64(&tc.offsetMillis)) * time.Millisecond)
}

// Today returns the trusted current date as YYYY-MM-DD (UTC).
func (tc *TrustedClock) Today() string {
	return tc.Now().UTC().Format("2006-01-02")
}

// Yesterday returns the trusted date one day back as YYYY-MM-DD (UTC).
func (tc *TrustedClock) Yesterday() string {
	return tc.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
}

// IsToday reports whether the given YYYY-MM-DD string is the trusted today.
func (tc *TrustedClock) IsToday(date string) bool {
	return date == tc.Today()
}
