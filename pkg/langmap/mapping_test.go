package langmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMapsDialectCollapses(t *testing.T) {
	tags := []string{"arb", "arz", "aeb", "eng", "xyz"}
	m := New(tags, []string{"ar", "en"})

	for _, tag := range []string{"arb", "arz", "aeb"} {
		code, ok := m.Resolve(tag)
		require.True(t, ok, tag)
		require.Equal(t, "ar", code, tag)
	}

	code, ok := m.Resolve("eng")
	require.True(t, ok)
	require.Equal(t, "en", code)

	require.False(t, m.IsMapped("xyz"))
	require.Equal(t, []string{"xyz"}, m.Unmapped())
}

func TestNewDirectCodeMatch(t *testing.T) {
	// ceb and nso have no 639-1 code but some detectors carry them verbatim.
	m := New([]string{"ceb", "nso"}, []string{"ceb", "nso"})
	code, ok := m.Resolve("ceb")
	require.True(t, ok)
	require.Equal(t, "ceb", code)
	require.Empty(t, m.Unmapped())
}

func TestCollapseOntoUnsupportedCodeIsUnmapped(t *testing.T) {
	// zsm collapses to ms; a detector without ms must not fall through
	// to another resolution path.
	m := New([]string{"zsm"}, []string{"en", "de"})
	require.False(t, m.IsMapped("zsm"))
	require.Equal(t, []string{"zsm"}, m.Unmapped())
}

func TestNewNeverMultiValuedAndDeterministic(t *testing.T) {
	tags := []string{"swh", "swa", "deu", "deu", "qqq", "por"}
	codes := []string{"sw", "de", "pt", "pt_BR"}

	a := New(tags, codes)
	b := New(tags, codes)

	require.Equal(t, a.Mapped(), b.Mapped())
	require.Equal(t, a.Unmapped(), b.Unmapped())

	// Macrolanguage and individual language collapse onto one code.
	swh, _ := a.Resolve("swh")
	swa, _ := a.Resolve("swa")
	require.Equal(t, "sw", swh)
	require.Equal(t, "sw", swa)

	// Regional detector codes normalize before matching.
	pt, ok := a.Resolve("por")
	require.True(t, ok)
	require.Equal(t, "pt", pt)

	require.Equal(t, 5, a.Size())
}

func TestAlpha2For(t *testing.T) {
	code, ok := Alpha2For("fra")
	require.True(t, ok)
	require.Equal(t, "fr", code)

	code, ok = Alpha2For("arz")
	require.True(t, ok)
	require.Equal(t, "ar", code)

	_, ok = Alpha2For("qqq")
	require.False(t, ok)
}
