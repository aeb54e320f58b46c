package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(2)
	r.Update(1, "docs/index.md")
	r.Update(2, "docs/setup.md")
	r.Finish()

	assert.Equal(t, "Rendering 2 pages\n[1/2] docs/index.md\n[2/2] docs/setup.md\nSite build complete\n", buf.String())
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	_, ok := NewReporter().(*CIReporter)
	assert.True(t, ok)
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	_, ok := NewReporter().(*TerminalReporter)
	assert.True(t, ok)
}
