package utils

import (
	"net"
	"strings"
)

// GetLocalIPs returns all non-loopback IPv4 addresses. Link-local
// (169.254.x.x) addresses are dropped when a routable one exists.
func GetLocalIPs() []string {
	var all []string
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				all = append(all, ipnet.IP.String())
			}
		}
	}
	return filterLinkLocal(all)
}

func filterLinkLocal(ips []string) []string {
	hasRoutable := false
	for _, ip := range ips {
		if !strings.HasPrefix(ip, "169.254") {
			hasRoutable = true
			break
		}
	}

	var out []string
	for _, ip := range ips {
		// Keep everything when nothing better is available
		if hasRoutable && strings.HasPrefix(ip, "169.254") {
			continue
		}
		out = append(out, ip)
	}
	return out
}

// FormURLs lists the addresses other machines on the network can open
// the form at, localhost first
func FormURLs(port string) []string {
	urls := []string{"http://localhost:" + port}
	for _, ip := range GetLocalIPs() {
		urls = append(urls, "http://"+net.JoinHostPort(ip, port))
	}
	return urls
}
