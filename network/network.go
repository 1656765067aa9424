// Package network provides the HTTP clients used to fetch stream manifests.
package network

import (
	"net/http"
	"time"

	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/spf13/viper"
)

const timeout = 30 * time.Second

// Client is the shared client for plain requests.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: &userAgent{next: newTransport()},
}

// New returns the client configured by network.impersonate_tls.
func New() *http.Client {
	if viper.GetBool(key.NetworkImpersonateTLS) {
		return &http.Client{
			Timeout:   timeout,
			Transport: &userAgent{next: NewImpersonating(), value: browserUserAgent},
		}
	}
	return Client
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = timeout
	return t
}

// userAgent sets the User-Agent header on requests that carry none.
type userAgent struct {
	next  http.RoundTripper
	value string
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}

	value := u.value
	if value == "" {
		value = constant.UserAgent
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", value)
	return u.next.RoundTrip(req)
}
