package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{"greenhouse board", "https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"lever posting", "https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"workday", "https://acme.wd1.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"workday root domain", "https://acme.workday.com/careers", PlatformWorkday},
		{"company site", "https://careers.acme.com/jobs/123", PlatformUnknown},
		{"malformed", "://nope", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description.body")
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformWorkday), "[data-automation-id='jobDescription']")
	// Unknown platforms fall back to the generic job-board selectors.
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	for _, platform := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformUnknown} {
		noise := PlatformNoiseSelectors(platform)
		assert.Contains(t, noise, "form", "application forms are always stripped for %s", platform)
		assert.Contains(t, noise, ".eeo-statement")
	}

	assert.Contains(t, PlatformNoiseSelectors(PlatformGreenhouse), ".post-apply")
	assert.Contains(t, PlatformNoiseSelectors(PlatformLever), ".posting-apply")
	assert.Contains(t, PlatformNoiseSelectors(PlatformWorkday), "[data-automation-id='applyButton']")
}
