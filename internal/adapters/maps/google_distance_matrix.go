package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/platform/obs"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/ports"
)

// GoogleDistanceMatrix implements TravelTimeEstimator against the
// Google Distance Matrix API.
//
// It coordinates:
//   - Address normalization
//   - A persistent travel-time cache
//   - External API calls with retry/backoff
//   - A circuit breaker so a dead upstream fails fast instead of
//     burning the whole retry budget per employee
//
// Every failure path returns ok=false; the estimator never guesses.
// The provider is safe for concurrent use.
type GoogleDistanceMatrix struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   ports.TravelTimeCache
	breaker *gobreaker.CircuitBreaker[int]
}

func NewGoogleDistanceMatrix(apiKey string, cache ports.TravelTimeCache) (*GoogleDistanceMatrix, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	settings := gobreaker.Settings{
		Name:        "google-distance-matrix",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("breaker=%s from=%s to=%s", name, from.String(), to.String())
			obs.RecordBreakerTransition(to.String())
		},
	}

	return &GoogleDistanceMatrix{
		session: &http.Client{Timeout: 5 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
		cache:   cache,
		breaker: gobreaker.NewCircuitBreaker[int](settings),
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleDistanceMatrix) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// EstimateMinutes resolves the drive time origin -> destination.
// Cache first, then one matrix call behind the breaker.
func (g *GoogleDistanceMatrix) EstimateMinutes(ctx context.Context, origin, destination string) (int, bool) {
	normOrigin := g.normalize(origin)
	normDestination := g.normalize(destination)
	if normOrigin == "" || normDestination == "" {
		return 0, false
	}

	if g.cache != nil {
		minutes, hit, err := g.cache.Get(ctx, normOrigin, normDestination)
		if err != nil {
			log.Printf("travel time cache read failed: %v", err)
		} else if hit {
			obs.RecordTravelTimeLookup(obs.LookupHit, 0)
			return minutes, true
		}
	}

	start := time.Now()
	minutes, err := g.breaker.Execute(func() (int, error) {
		return g.fetchMinutes(ctx, normOrigin, normDestination)
	})
	if err != nil {
		obs.RecordTravelTimeLookup(obs.LookupError, time.Since(start))
		log.Printf("travel time lookup failed: origin=%q dest=%q err=%v", normOrigin, normDestination, err)
		return 0, false
	}
	obs.RecordTravelTimeLookup(obs.LookupOK, time.Since(start))

	if g.cache != nil {
		if err := g.cache.Put(ctx, normOrigin, normDestination, minutes); err != nil {
			log.Printf("travel time cache write failed: %v", err)
		}
	}

	return minutes, true
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// fetchMinutes performs one origin -> destination matrix call and
// converts the returned duration to whole minutes.
func (g *GoogleDistanceMatrix) fetchMinutes(ctx context.Context, origin, destination string) (int, error) {
	endpoint := g.baseURL + "/maps/api/distancematrix/json"

	query := url.Values{}
	query.Set("origins", origin)
	query.Set("destinations", destination)
	query.Set("mode", "driving")
	query.Set("key", g.apiKey)

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, endpoint, query)
	})
	if err != nil {
		return 0, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode matrix response: %w", err)
	}

	if decoded.Status != "OK" {
		return 0, fmt.Errorf("matrix status %q", decoded.Status)
	}
	if len(decoded.Rows) != 1 || len(decoded.Rows[0].Elements) != 1 {
		return 0, fmt.Errorf(
			"expected a 1x1 matrix; got rows=%d",
			len(decoded.Rows),
		)
	}

	element := decoded.Rows[0].Elements[0]
	if element.Status != "OK" {
		// Covers NOT_FOUND and ZERO_RESULTS (no drivable route).
		return 0, fmt.Errorf("no route for %q -> %q: element status %q", origin, destination, element.Status)
	}
	if element.Duration.Value < 0 {
		return 0, fmt.Errorf("negative duration for %q -> %q", origin, destination)
	}

	return int(math.Round(float64(element.Duration.Value) / 60.0)), nil
}
