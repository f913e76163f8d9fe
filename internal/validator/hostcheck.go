package validator

import (
	"net/netip"
	"strconv"
	"strings"
)

// IsPrivateHost reports whether host names the local machine or a private network.
// The check is purely lexical: names are never resolved.
//
// Rejected: localhost (and *.localhost), loopback, RFC 1918, link-local, unspecified
// and IPv6 unique-local addresses. Legacy IPv4 spellings ("127.1", "2130706433",
// "0x7f.0.0.1") are normalized first, as browsers and HTTP clients do.
//
// Names that merely start like a private address ("127.0.0.1.nip.io",
// "localhost.localdomain") are rejected too: wildcard DNS maps them back to it.
func IsPrivateHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" {
		return false
	}
	if strings.HasSuffix(host, ".localhost") || hasPrivatePrefix(host) {
		return true
	}

	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		var ok bool
		if addr, ok = parseLegacyIPv4(host); !ok {
			return false
		}
	}
	addr = addr.Unmap()

	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}

var privatePrefixes = []string{"localhost", "127.", "10.", "192.168."}

// hasPrivatePrefix matches localhost, 127.*, 10.*, 192.168.* and 172.16.* to 172.31.*
// on the lowercase name.
func hasPrivatePrefix(host string) bool {
	for _, p := range privatePrefixes {
		if strings.HasPrefix(host, p) {
			return true
		}
	}

	rest, ok := strings.CutPrefix(host, "172.")
	if !ok {
		return false
	}
	octet, _, found := strings.Cut(rest, ".")
	if !found {
		return false
	}
	n, err := strconv.Atoi(octet)
	return err == nil && n >= 16 && n <= 31
}

// parseLegacyIPv4 accepts the inet_aton forms: 1 to 4 dot-separated parts,
// each decimal, octal (leading 0) or hexadecimal (0x); the last part fills the remaining bytes.
func parseLegacyIPv4(host string) (netip.Addr, bool) {
	parts := strings.Split(host, ".")
	if len(parts) == 0 || len(parts) > 4 {
		return netip.Addr{}, false
	}

	values := make([]uint64, len(parts))
	for i, p := range parts {
		if p == "" {
			return netip.Addr{}, false
		}
		v, err := strconv.ParseUint(p, 0, 32)
		if err != nil {
			return netip.Addr{}, false
		}
		values[i] = v
	}

	var ip uint64
	last := len(values) - 1
	for i := 0; i < last; i++ {
		if values[i] > 0xff {
			return netip.Addr{}, false
		}
		ip |= values[i] << (8 * uint(3-i))
	}
	if values[last] >= 1<<(8*uint(4-last)) {
		return netip.Addr{}, false
	}
	ip |= values[last]

	return netip.AddrFrom4([4]byte{byte(ip >> 24), byte(ip >> 16), byte(ip >> 8), byte(ip)}), true
}
