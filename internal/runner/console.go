package runner

import (
	"fmt"
	"strings"
)

// console accumulates the check's narration in memory instead of
// writing to the process streams, so the report (and the tests) can
// read it back verbatim.
type console struct {
	out strings.Builder
	err strings.Builder
}

func (c *console) outf(format string, a ...any) {
	fmt.Fprintf(&c.out, format+"\n", a...)
}

func (c *console) errf(format string, a ...any) {
	fmt.Fprintf(&c.err, format+"\n", a...)
}

func (c *console) text() (stdout, stderr string) {
	return c.out.String(), c.err.String()
}
