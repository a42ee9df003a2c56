package waitable

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeoutMillis(t *testing.T) {
	require.Equal(t, uint32(0), timeoutMillis(0))
	require.Equal(t, uint32(0), timeoutMillis(-time.Second))
	require.Equal(t, uint32(1), timeoutMillis(time.Millisecond))
	require.Equal(t, uint32(1), timeoutMillis(1500*time.Microsecond)) // truncates
	require.Equal(t, uint32(50), timeoutMillis(50*time.Millisecond))
	require.Equal(t, uint32(5000), timeoutMillis(5*time.Second))
}

func TestTimeoutMillisSaturates(t *testing.T) {
	// Anything beyond the 32-bit millisecond range pins to the ceiling and
	// never collides with the infinite sentinel.
	require.Equal(t, maxWaitMillis, timeoutMillis(MaxWaitDuration))
	require.Equal(t, maxWaitMillis, timeoutMillis(MaxWaitDuration+time.Hour))
	require.Equal(t, maxWaitMillis, timeoutMillis(time.Duration(math.MaxInt64)))
	require.NotEqual(t, infiniteMillis, timeoutMillis(time.Duration(math.MaxInt64)))
}
