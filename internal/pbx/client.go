package pbx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// callPath is the FusionPBX click-to-call endpoint, fixed by the PBX.
const callPath = "/app/click_to_call/click_to_call.php"

const (
	defaultUserAgent = "click-to-call/0.1"
	defaultTimeout   = 10 * time.Second
)

// ErrIncomplete is returned by CallRequest.Validate when a required field is
// missing. The message doubles as the status line shown to the user.
var ErrIncomplete = errors.New("missing domain, extension or phone number")

// CallRequest is the value snapshot taken at the moment a call is triggered.
// It is decoupled from live UI state so an in-flight request is unaffected
// by subsequent edits.
type CallRequest struct {
	Domain     string
	Extension  string
	Key        string
	Number     string
	AutoAnswer bool
}

// Validate enforces the dispatch precondition: domain, extension and number
// must all be non-empty. The key is allowed to be empty; the PBX rejects the
// request itself if it requires one.
func (r CallRequest) Validate() error {
	if r.Domain == "" || r.Extension == "" || r.Number == "" {
		return ErrIncomplete
	}
	return nil
}

// Client issues click-to-call requests against a PBX.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a Client. A non-positive timeout uses the default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}
}

// BuildCallURL constructs the click-to-call GET URL for req. The domain is
// prefixed with https:// unless it already carries an explicit scheme. The
// PBX expects the dialed number as both caller and callee identity.
func BuildCallURL(req CallRequest) string {
	base := req.Domain
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	values := url.Values{}
	values.Set("src_cid_name", req.Number)
	values.Set("src_cid_number", req.Number)
	values.Set("dest_cid_name", req.Number)
	values.Set("dest_cid_number", req.Number)
	values.Set("src", req.Number)
	values.Set("dest", req.Extension)
	values.Set("auto_answer", boolParam(req.AutoAnswer))
	values.Set("rec", "")
	values.Set("ringback", "us-ring")
	values.Set("key", req.Key)

	return base + callPath + "?" + values.Encode()
}

// Dispatch issues exactly one GET request for req and reports the outcome.
// There is no automatic retry; a dispatched attempt always runs to
// completion. Callers are expected to have validated req already.
func (c *Client) Dispatch(ctx context.Context, req CallRequest) Outcome {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildCallURL(req), nil)
	if err != nil {
		return Outcome{Kind: OutcomeNetworkError, Number: req.Number, Err: err}
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Outcome{Kind: OutcomeNetworkError, Number: req.Number, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{Kind: OutcomeHTTPError, Number: req.Number, StatusCode: resp.StatusCode}
	}
	return Outcome{Kind: OutcomeSuccess, Number: req.Number}
}

func boolParam(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
