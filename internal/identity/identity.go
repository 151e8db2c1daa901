// Package identity derives the keys a player's high score is stored under.
//
// A local player always has an "id:" key backed by a persisted UUID. When the
// public IP is known, an "ip:" key links scores across machines behind the
// same address. Network-derived values are hashed before they reach storage.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// DefaultLookupURL returns the caller's public IP as {"ip": "..."}.
const DefaultLookupURL = "https://api.ipify.org?format=json"

// DefaultLookupTimeout bounds a single lookup request.
const DefaultLookupTimeout = 4 * time.Second

// Key prefixes.
const (
	PrefixID  = "id:"
	PrefixIP  = "ip:"
	PrefixSSH = "ssh:"
)

// ErrBadResponse is returned when the lookup service answers with something
// that is not an IP address.
var ErrBadResponse = errors.New("identity: unexpected lookup response")

// Hash returns the hex xxh3 digest used for network-derived keys.
func Hash(s string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(s))
}

// LocalKeys returns the keys for a local player. ip may be empty.
func LocalKeys(playerID, ip string) []string {
	keys := []string{PrefixID + playerID}
	if ip != "" {
		keys = append(keys, PrefixIP+Hash(ip))
	}
	return keys
}

// SSHKeys returns the keys for a remote player. Empty parts are skipped.
func SSHKeys(user string, publicKey []byte, remoteAddr string) []string {
	var keys []string
	if len(publicKey) > 0 {
		keys = append(keys, PrefixID+fmt.Sprintf("%016x", xxh3.Hash(publicKey)))
	}
	if user != "" {
		keys = append(keys, PrefixSSH+user)
	}
	if host := hostOnly(remoteAddr); host != "" {
		keys = append(keys, PrefixIP+Hash(host))
	}
	return keys
}

func hostOnly(addr string) string {
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// LookupPublicIP asks url for the caller's public IP.
func LookupPublicIP(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultLookupURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("identity: cannot build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<12)).Decode(&body); err != nil {
		return "", fmt.Errorf("identity: cannot decode response: %w", err)
	}
	ip := strings.TrimSpace(body.IP)
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("%w: %q", ErrBadResponse, body.IP)
	}
	return ip, nil
}

// Profile is the persisted part of a local identity.
type Profile interface {
	PlayerID() (string, error)
	CachedIP() (string, bool, error)
	SetCachedIP(ip string) error
}

// Identity is a resolved set of keys.
type Identity struct {
	PlayerID string
	IP       string
	Keys     []string
}

// Resolver builds the local identity from the profile and, unless offline,
// a public IP lookup.
type Resolver struct {
	Profile Profile
	Client  *http.Client
	URL     string
	Offline bool
}

// Local returns the identity known without touching the network: the player
// ID plus a cached IP, if one was saved before.
func (r *Resolver) Local() (Identity, error) {
	id, err := r.Profile.PlayerID()
	if err != nil {
		return Identity{}, err
	}
	ip, _, err := r.Profile.CachedIP()
	if err != nil {
		return Identity{PlayerID: id, Keys: LocalKeys(id, "")}, err
	}
	return Identity{PlayerID: id, IP: ip, Keys: LocalKeys(id, ip)}, nil
}

// Resolve returns the local identity, looking up and caching the public IP
// when none is cached. A failed lookup still returns the id-only identity.
func (r *Resolver) Resolve(ctx context.Context) (Identity, error) {
	ident, err := r.Local()
	if err != nil || ident.IP != "" || r.Offline {
		return ident, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultLookupTimeout)
	defer cancel()

	ip, err := LookupPublicIP(ctx, r.Client, r.URL)
	if err != nil {
		return ident, err
	}
	ident = Identity{PlayerID: ident.PlayerID, IP: ip, Keys: LocalKeys(ident.PlayerID, ip)}
	return ident, r.Profile.SetCachedIP(ip)
}
