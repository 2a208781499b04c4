package sqlfrag

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// goldenCase is one named fragment in a golden listing.
type goldenCase struct {
	name  string
	build func() (Frag, error)
}

// assertGolden renders every case as "name: sql" and compares the listing
// against testdata/golden/<fixture>.golden. Run with -update to regenerate.
func assertGolden(t *testing.T, fixture string, cases []goldenCase) {
	t.Helper()

	var b strings.Builder
	for _, c := range cases {
		f, err := c.build()
		require.NoError(t, err, c.name)
		b.WriteString(c.name)
		b.WriteString(": ")
		b.WriteString(f.SQL())
		b.WriteByte('\n')
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, fixture, []byte(b.String()))
}
