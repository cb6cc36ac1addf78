package transport

import (
	"net/http"
	"time"

	"github.com/saturnines/shopify-gql/pkg/ratelimit"
)

// TimestampTransport records the start time of every round trip in a
// TimeStore under Key. It only does bookkeeping and never delays requests.
type TimestampTransport struct {
	Base  http.RoundTripper
	Store ratelimit.TimeStore
	Key   string

	now func() time.Time
}

// NewTimestampTransport wraps base, defaulting to http.DefaultTransport.
func NewTimestampTransport(base http.RoundTripper, store ratelimit.TimeStore, key string) *TimestampTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &TimestampTransport{
		Base:  base,
		Store: store,
		Key:   key,
		now:   time.Now,
	}
}

func (t *TimestampTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Store != nil {
		t.Store.Push(t.Key, t.now())
	}
	return t.Base.RoundTrip(req)
}
