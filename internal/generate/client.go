// Package generate fetches prompt-driven raster imagery from an external
// image-generation endpoint. One outbound request per activation; no
// retry policy beyond the user triggering a new request.
package generate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	// ErrFetchFailed reports a request that did not yield a usable image.
	ErrFetchFailed = errors.New("image fetch failed")

	// ErrFetchInFlight is returned when a fetch is requested while a
	// previous one has not resolved. The new request is not issued.
	ErrFetchInFlight = errors.New("image fetch already in flight")
)

// DefaultBaseURL is the public endpoint the demo generates imagery from.
const DefaultBaseURL = "https://image.pollinations.ai"

// Client issues prompt-parameterized image requests and decodes the
// response into a compositing-sized buffer. Concurrent fetches are
// serialized: at most one request is in flight at a time.
type Client struct {
	baseURL string
	http    *http.Client
	width   int
	height  int

	mu       sync.Mutex
	inFlight bool
}

func NewClient(baseURL string, width, height int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		width:   width,
		height:  height,
	}
}

// Fetch requests one image for the prompt. The seed query parameter makes
// repeated prompts yield distinct imagery.
func (c *Client) Fetch(ctx context.Context, prompt string) (*image.NRGBA, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrFetchInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint returned %s", ErrFetchFailed, resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrFetchFailed, err)
	}

	b := img.Bounds()
	if b.Dx() == c.width && b.Dy() == c.height {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, c.width, c.height, imaging.Linear), nil
}

func (c *Client) requestURL(prompt string) string {
	query := url.Values{}
	query.Set("width", fmt.Sprint(c.width))
	query.Set("height", fmt.Sprint(c.height))
	query.Set("seed", fmt.Sprint(uuid.New().ID()))
	return fmt.Sprintf("%s/prompt/%s?%s", c.baseURL, url.PathEscape(prompt), query.Encode())
}
