package process

// Notes:
// - Only non-existent and non-positive PIDs are exercised; killing a real
//   process group is covered by the browser integration tests.

import "testing"

func TestKillProcessGroup_NoSuchProcess(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

func TestKillProcessGroup_NonPositivePID(t *testing.T) {
	t.Parallel()

	// Must return without signalling the test's own process group.
	KillProcessGroup(0)
	KillProcessGroup(-1)
}
