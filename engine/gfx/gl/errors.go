package glbackend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/bastion/engine/logging"
)

// BuildError carries the driver's view of a failed compile or link.
type BuildError struct {
	Source string // empty for link failures
	Log    string
}

func (e *BuildError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString("\n\nSHADER SOURCE ON GPU\n--------------------\n")
		b.WriteString(e.Source)
		b.WriteString("\n--------------------")
	}
	b.WriteString("\n\nERROR LOG\n---------\n")
	b.WriteString(e.Log)
	b.WriteString("\n---------")
	return b.String()
}

// drainErrors logs every queued error code until next reports none.
func drainErrors(next func() uint32) int {
	n := 0
	for code := next(); code != gl.NO_ERROR; code = next() {
		logging.Verbose(fmt.Sprintf("OpenGL returned an error: %d", code))
		n++
	}
	return n
}

// checkSystem validates the GL version string ("3.3.0 NVIDIA ...") and the
// number of combined texture image units.
func checkSystem(version string, units, minUnits int) error {
	num, _, _ := strings.Cut(version, " ")
	major, minor, _ := strings.Cut(num, ".")
	hi, err1 := strconv.Atoi(major)
	lo, err2 := strconv.Atoi(strings.SplitN(minor, ".", 2)[0])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("unrecognised OpenGL version %q", version)
	}
	if hi < 3 || hi == 3 && lo < 3 {
		return fmt.Errorf("OpenGL version 3.3 or greater required, and only version %s detected", num)
	}
	if units < minUnits {
		return fmt.Errorf("OpenGL implementation supports only %d texture units, whereas %d are required", units, minUnits)
	}
	return nil
}
