// Package hlstest provides a scripted stream client for tests.
package hlstest

import (
	"context"
	"sync"

	"github.com/seriesgenius/seriesgenius/hls"
	"github.com/seriesgenius/seriesgenius/player"
)

// Client records calls and lets tests emit events on its behalf.
type Client struct {
	emit    func(hls.Event)
	loadErr error

	mu        sync.Mutex
	url       string
	media     player.Element
	destroyed int
}

func (c *Client) Load(_ context.Context, manifestURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.url = manifestURL
	return c.loadErr
}

func (c *Client) Attach(media player.Element) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.media = media
	return nil
}

func (c *Client) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed++
}

// Emit delivers event to the session that owns the client.
func (c *Client) Emit(event hls.Event) {
	c.emit(event)
}

// URL returns the manifest passed to Load.
func (c *Client) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

// Media returns the attached element.
func (c *Client) Media() player.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.media
}

// Destroyed returns how many times Destroy was called.
func (c *Client) Destroyed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// Factory builds Clients and keeps every one of them.
type Factory struct {
	// LoadErr is returned by Load of clients built afterwards.
	LoadErr error

	mu      sync.Mutex
	clients []*Client
}

// New satisfies hls.Factory.
func (f *Factory) New(emit func(hls.Event)) hls.Client {
	f.mu.Lock()
	defer f.mu.Unlock()

	client := &Client{emit: emit, loadErr: f.LoadErr}
	f.clients = append(f.clients, client)
	return client
}

// Clients returns every client built so far.
func (f *Factory) Clients() []*Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Client(nil), f.clients...)
}

// Last returns the most recent client, or nil.
func (f *Factory) Last() *Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.clients) == 0 {
		return nil
	}
	return f.clients[len(f.clients)-1]
}

// Live returns how many clients have not been destroyed.
func (f *Factory) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	live := 0
	for _, client := range f.clients {
		if client.Destroyed() == 0 {
			live++
		}
	}
	return live
}
