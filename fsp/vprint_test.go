package fsp

import (
	"bytes"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test032VPrintfOnlyWhenVerbose(t *testing.T) {

	cv.Convey(`VPrintf writes a time-stamped line to OurStdout only while Verbose is set`, t, func() {
		var buf bytes.Buffer
		saved, savedVerbose := OurStdout, Verbose
		OurStdout = &buf
		defer func() { OurStdout, Verbose = saved, savedVerbose }()

		Verbose = false
		VPrintf("hidden %d", 1)
		cv.So(buf.Len(), cv.ShouldEqual, 0)

		Verbose = true
		VPrintf("shown %d", 2)
		cv.So(buf.String(), cv.ShouldContainSubstring, "shown 2")
		cv.So(buf.String(), cv.ShouldContainSubstring, "vprint_test.go:")
	})
}
