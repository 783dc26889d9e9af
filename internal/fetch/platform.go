package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board or applicant tracking system that hosts postings.
type Platform string

// Known job boards.
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformLinkedIn        Platform = "linkedin"
	PlatformUnknown         Platform = "unknown"
)

// board describes where a platform puts the posting body and what page
// furniture surrounds it.
type board struct {
	platform Platform
	domains  []string
	content  []string
	noise    []string
}

var boards = []board{
	{
		platform: PlatformGreenhouse,
		domains:  []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		domains:  []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		domains:  []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", "[data-automation-id='similarJobs']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		domains:  []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", "main"},
		noise:    []string{"[class*='applicationForm']"},
	},
	{
		platform: PlatformSmartRecruiters,
		domains:  []string{"smartrecruiters.com"},
		content:  []string{".job-sections", "[itemprop='description']", "main"},
		noise:    []string{".job-apply", ".sticky-apply"},
	},
	{
		platform: PlatformLinkedIn,
		domains:  []string{"linkedin.com"},
		content:  []string{".show-more-less-html__markup", ".description__text", ".jobs-description__content"},
		noise:    []string{".top-card-layout__cta-container", ".similar-jobs", ".people-also-viewed"},
	},
}

// commonNoise is removed from every posting: application forms, EEO
// notices, share widgets and cookie banners.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".social-links",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board from a URL's host. Subdomains
// match their parent domain.
func DetectPlatform(urlStr string) Platform {
	b, ok := lookup(urlStr)
	if !ok {
		return PlatformUnknown
	}
	return b.platform
}

func lookup(urlStr string) (board, bool) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return board{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, b := range boards {
		for _, domain := range b.domains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return b, true
			}
		}
	}
	return board{}, false
}

func boardFor(platform Platform) (board, bool) {
	for _, b := range boards {
		if b.platform == platform {
			return b, true
		}
	}
	return board{}, false
}

// PlatformContentSelectors returns the posting-body selectors for platform,
// most specific first. Unknown platforms get the generic job selectors.
func PlatformContentSelectors(platform Platform) []string {
	b, ok := boardFor(platform)
	if !ok {
		return JobPostingSelectors()
	}
	return append([]string(nil), b.content...)
}

// PlatformNoiseSelectors returns the elements to strip before extraction.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string(nil), commonNoise...)
	if b, ok := boardFor(platform); ok {
		noise = append(noise, b.noise...)
	}
	return noise
}
