package httpclient

import (
	"fmt"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Client adapts a browser-profile TLS client to the net/http request and
// response types the rest of the code speaks.
type Client struct {
	inner tls_client.HttpClient
}

// New builds a client with a browser TLS fingerprint. Some download hosts
// serve proxied links without valid certificates, so verification is off.
func New(timeout time.Duration) (*Client, error) {
	opts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithClientProfile(profiles.DefaultClientProfile),
		tls_client.WithInsecureSkipVerify(),
		tls_client.WithRandomTLSExtensionOrder(),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	}

	inner, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create tls client: %w", err)
	}
	return &Client{inner: inner}, nil
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	freq := &fhttp.Request{
		Method:        req.Method,
		URL:           req.URL,
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		Header:        make(fhttp.Header, len(req.Header)),
		Body:          req.Body,
		ContentLength: req.ContentLength,
		Host:          req.Host,
	}
	for k, v := range req.Header {
		freq.Header[k] = v
	}

	fresp, err := c.inner.Do(freq)
	if err != nil {
		return nil, err
	}

	resp := &http.Response{
		Status:           fresp.Status,
		StatusCode:       fresp.StatusCode,
		Proto:            fresp.Proto,
		ProtoMajor:       fresp.ProtoMajor,
		ProtoMinor:       fresp.ProtoMinor,
		Header:           make(http.Header, len(fresp.Header)),
		Body:             fresp.Body,
		ContentLength:    fresp.ContentLength,
		TransferEncoding: fresp.TransferEncoding,
		Uncompressed:     fresp.Uncompressed,
		Request:          req,
	}
	for k, v := range fresp.Header {
		resp.Header[k] = v
	}
	return resp, nil
}
