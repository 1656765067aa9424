package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"

	utls "github.com/refraction-networking/utls"
	"github.com/seriesgenius/seriesgenius/log"
	"golang.org/x/net/http2"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Impersonating is a RoundTripper that presents a Chrome 120 TLS
// fingerprint. HTTPS requests go over HTTP/2 first and are retried over
// HTTP/1.1 when that fails; plain HTTP uses a regular transport.
type Impersonating struct {
	h2    *http2.Transport
	h1    *http.Transport
	plain http.RoundTripper
}

// NewImpersonating creates an Impersonating transport.
func NewImpersonating() *Impersonating {
	return &Impersonating{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, nil)
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialTLS(ctx, network, addr, []string{"http/1.1"})
			},
		},
		plain: newTransport(),
	}
}

func (t *Impersonating) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.plain.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	retry, rewindErr := rewind(req)
	if rewindErr != nil {
		return nil, err
	}

	log.Debugf("h2 request to %s failed, retrying over http/1.1: %v", req.URL.Host, err)
	return t.h1.RoundTrip(retry)
}

// rewind returns a copy of req whose body can be sent again.
func rewind(req *http.Request) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return retry, nil
	}

	if req.GetBody == nil {
		return nil, fmt.Errorf("request body cannot be replayed")
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	retry.Body = body
	return retry, nil
}

// dialTLS opens a uTLS connection with the Chrome hello. protos, when set,
// overrides the advertised ALPN list.
func dialTLS(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
