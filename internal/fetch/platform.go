// Package fetch - platform.go provides site-platform detection and
// platform-specific selectors. Portfolio pages cluster on a handful of site
// builders, and knowing the builder tells us where the content lives and
// whether a data-layer probe is worth trying.
package fetch

import (
	"strings"
)

// Platform represents a known website platform or generator.
type Platform string

const (
	// PlatformGatsby is a Gatsby static site (page-data.json data layer)
	PlatformGatsby Platform = "gatsby"
	// PlatformNextJS is a Next.js site (__NEXT_DATA__ payload)
	PlatformNextJS Platform = "nextjs"
	// PlatformWebflow is a Webflow-built site
	PlatformWebflow Platform = "webflow"
	// PlatformWordPress is a WordPress site
	PlatformWordPress Platform = "wordpress"
	// PlatformSquarespace is a Squarespace-built site
	PlatformSquarespace Platform = "squarespace"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the site platform from raw page HTML.
func DetectPlatform(html string) Platform {
	lower := strings.ToLower(html)

	// Gatsby patterns
	if strings.Contains(lower, "___gatsby") ||
		strings.Contains(lower, "/page-data/") ||
		strings.Contains(lower, `"generator" content="gatsby`) {
		return PlatformGatsby
	}

	// Next.js patterns
	if strings.Contains(lower, "__next_data__") ||
		strings.Contains(lower, "/_next/static/") {
		return PlatformNextJS
	}

	// Webflow patterns
	if strings.Contains(lower, "data-wf-site") ||
		strings.Contains(lower, `"generator" content="webflow`) {
		return PlatformWebflow
	}

	// WordPress patterns
	if strings.Contains(lower, "wp-content/") ||
		strings.Contains(lower, `content="wordpress`) {
		return PlatformWordPress
	}

	// Squarespace patterns
	if strings.Contains(lower, "static1.squarespace.com") ||
		strings.Contains(lower, `content="squarespace`) {
		return PlatformSquarespace
	}

	return PlatformUnknown
}

// HasDataLayer reports whether the platform exposes a JSON data layer that
// can be probed directly instead of scraping rendered HTML.
func HasDataLayer(platform Platform) bool {
	return platform == PlatformGatsby || platform == PlatformNextJS
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformWebflow:
		return []string{
			".w-dyn-items",
			".w-dyn-list",
			".collection-list",
			"main",
			".content",
		}
	case PlatformWordPress:
		return []string{
			".entry-content",
			".post-content",
			"#content",
			"main",
			"article",
		}
	case PlatformSquarespace:
		return []string{
			".sqs-block-content",
			".content-wrapper",
			"main",
			"#content",
		}
	default:
		return PortfolioPageSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	// Common noise selectors for all platforms
	common := []string{
		// Newsletter and contact forms
		"form",
		".newsletter-signup",
		".contact-form",
		".subscribe-form",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Legal
		".legal-disclaimer",
		".disclosures",

		// Generic navigation already handled in fetch.go
	}

	// Platform-specific noise selectors
	switch platform {
	case PlatformWebflow:
		return append(common,
			".w-nav",
			".w-webflow-badge",
		)
	case PlatformWordPress:
		return append(common,
			".widget-area",
			".comments-area",
			"#secondary",
		)
	case PlatformSquarespace:
		return append(common,
			".sqs-announcement-bar",
			".sqs-cookie-banner-v2",
		)
	default:
		return common
	}
}
