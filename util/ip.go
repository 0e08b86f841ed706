package util

import (
	"fmt"
	"net"
)

// Address scopes reported by AddressScope
const (
	ScopePrivate = "private"
	ScopePublic  = "public"
	ScopeInvalid = "invalid"
)

var privateIPBlocks []*net.IPNet

func init() {
	privateIPs, err := ParseSubnets(
		[]string{
			//"127.0.0.0/8",    // IPv4 Loopback; handled by ip.IsLoopback
			//"::1/128",        // IPv6 Loopback; handled by ip.IsLoopback
			//"169.254.0.0/16", // RFC3927 link-local; handled by ip.IsLinkLocalUnicast()
			//"fe80::/10",      // IPv6 link-local; handled by ip.IsLinkLocalUnicast()
			"10.0.0.0/8",     // RFC1918
			"172.16.0.0/12",  // RFC1918
			"192.168.0.0/16", // RFC1918
			"100.64.0.0/10",  // RFC6598 carrier grade NAT
			"fc00::/7",       // IPv6 unique local addr
		})

	if err != nil {
		panic(fmt.Sprintf("Error defining private IPs: %v", err.Error()))
	}
	privateIPBlocks = privateIPs
}

// ParseSubnets parses CIDR ranges and bare addresses into net.IPNet format.
// Bare addresses become /32 or /128 networks.
func ParseSubnets(subnets []string) ([]*net.IPNet, error) {
	var parsedSubnets []*net.IPNet

	for _, entry := range subnets {
		_, block, err := net.ParseCIDR(entry)

		// If there was an error, check if entry was an IP
		if err != nil {
			ipAddr := net.ParseIP(entry)
			if ipAddr == nil {
				return parsedSubnets, fmt.Errorf("parsing subnet %q: %w", entry, err)
			}

			subnetMask := "/128"
			if ipAddr.To4() != nil {
				subnetMask = "/32"
			}

			_, block, err = net.ParseCIDR(entry + subnetMask)
			if err != nil {
				return parsedSubnets, fmt.Errorf("parsing subnet %q: %w", entry, err)
			}
		}

		parsedSubnets = append(parsedSubnets, block)
	}
	return parsedSubnets, nil
}

//IPIsPubliclyRoutable checks if an IP address is publicly routable. See privateIPBlocks.
func IPIsPubliclyRoutable(ip net.IP) bool {
	// cache IPv4 conversion so it not performed every in every ip.IsXXX method
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}

	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return false
	}

	return !ContainsIP(privateIPBlocks, ip)
}

//ContainsIP checks if a collection of subnets contains an IP
func ContainsIP(subnets []*net.IPNet, ip net.IP) bool {
	// cache IPv4 conversion so it not performed every in every Contains call
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}

	for _, block := range subnets {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

// IsIP returns true if string is a valid IP address
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// AddressScope labels an address taken from a connection table as private,
// public or invalid
func AddressScope(address string) string {
	ip := net.ParseIP(address)
	if ip == nil {
		return ScopeInvalid
	}
	if IPIsPubliclyRoutable(ip) {
		return ScopePublic
	}
	return ScopePrivate
}
