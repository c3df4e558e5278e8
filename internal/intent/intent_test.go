package intent

import "testing"

func TestOperationResultString(t *testing.T) {
	cases := map[OperationResult]string{
		Ok:              "Ok",
		NotOwner:        "NotOwner",
		InvalidInput:    "InvalidInput",
		OperationFailed: "OperationFailed",
		NotInRange:      "NotInRange",
		InvalidTarget:   "InvalidTarget",
		Empty:           "Empty",
		Full:            "Full",
		OperationResult(99): "Unknown",
	}
	for r, want := range cases {
		if got := r.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", r, got, want)
		}
	}
}
