package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/acme/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/123", PlatformAshby},
		{"https://jobs.smartrecruiters.com/Acme/744000012345-backend-engineer", PlatformSmartRecruiters},
		{"https://www.linkedin.com/jobs/view/3912345678", PlatformLinkedIn},
		{"https://BOARDS.GREENHOUSE.IO:443/acme", PlatformGreenhouse},
		{"https://notlever.co.example.com/jobs", PlatformUnknown},
		{"https://fakegreenhouse.io/jobs", PlatformUnknown},
		{"https://example.com/jobs", PlatformUnknown},
		{"::not a url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description")
	assert.Contains(t, PlatformContentSelectors(PlatformAshby), "main")
	assert.Contains(t, PlatformContentSelectors(PlatformLinkedIn), ".show-more-less-html__markup")
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformContentSelectors_ReturnsCopy(t *testing.T) {
	sel := PlatformContentSelectors(PlatformLever)
	sel[0] = "mutated"
	assert.NotEqual(t, "mutated", PlatformContentSelectors(PlatformLever)[0])
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")
	assert.Contains(t, common, ".eeo-statement")

	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, ".voluntary-self-id")
	assert.Greater(t, len(greenhouse), len(common))

	// appending per-platform noise never leaks into the shared list
	_ = PlatformNoiseSelectors(PlatformLever)
	assert.Equal(t, len(common), len(PlatformNoiseSelectors(PlatformUnknown)))
}
