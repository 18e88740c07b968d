package utils

import (
	"fmt"
	"strings"

	ua "github.com/mileusna/useragent"
)

// ParseUserAgent extracts browser, OS and device type from a User-Agent string
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsedUA := ua.Parse(userAgent)

	browser = parsedUA.Name
	if browser == "" {
		browser = "Unknown Browser"
	}

	os = parsedUA.OS
	if os == "" {
		os = "Unknown OS"
	}

	device = "Desktop"
	if parsedUA.Mobile {
		if strings.Contains(userAgent, "iPhone") {
			device = "iPhone"
		} else {
			device = "Mobile"
		}
	} else if parsedUA.Tablet {
		device = "Tablet"
	}

	return strings.TrimSpace(browser), strings.TrimSpace(os), device
}

// DeviceName creates a user-friendly session name like "Chrome on Mac"
func DeviceName(userAgent string) string {
	browser, os, _ := ParseUserAgent(userAgent)
	return fmt.Sprintf("%s on %s", browser, os)
}
