package nifticount

import (
	"fmt"

	"github.com/henghuang/nifti"
)

// parseImage consumes panics emitted by the nifti library, which are
// inappropriate and must be captured in order to turn them into
// recoverable errors.
func parseImage(filename string, rdata bool) (parsedData nifti.Nifti1Image, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			err = fmt.Errorf("%v", panicErr)
		}
	}()

	parsedData.LoadImage(filename, rdata)

	return
}

// parseHeader consumes panics emitted by the nifti library, which are
// inappropriate and must be captured in order to turn them into
// recoverable errors.
func parseHeader(filename string) (parsedData nifti.Nifti1Header, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			err = fmt.Errorf("%v", panicErr)
		}
	}()

	parsedData.LoadHeader(filename)

	return
}
