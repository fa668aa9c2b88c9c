package idle

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type xprintidleProvider struct {
	path string
}

func newProvider() Provider {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedProvider{}
	}
	return xprintidleProvider{path: path}
}

func (p xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(p.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseMillis(string(output))
}

func parseMillis(raw string) (time.Duration, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond, nil
}
