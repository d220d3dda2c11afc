package errors_test

import (
	"errors"
	"fmt"

	pkgerrors "github.com/agentstation/mirror/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := pkgerrors.Configf("inspector", "unknown field %q", "age")

	if errors.Is(err, pkgerrors.ErrConfiguration) {
		fmt.Println("Configuration rejected")
	}

	// Output: Configuration rejected
}

// Example_undefinedMetric shows how a zero denominator is reported.
func Example_undefinedMetric() {
	var err error = pkgerrors.NewUndefinedMetricError("unmatched_mirror_rate", "mirror volume")

	if errors.Is(err, pkgerrors.ErrUndefinedMetric) {
		fmt.Println("n/a:", err)
	}

	// Output: n/a: metric unmatched_mirror_rate is undefined: mirror volume is zero
}
