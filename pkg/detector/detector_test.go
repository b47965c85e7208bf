package detector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lidbench/pkg/cache"
	"lidbench/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestMockFixedAndOverrides(t *testing.T) {
	m := Mock{
		CodesValue: []string{"de", "fr"},
		Code:       "de",
		ByText:     map[string]string{"bonjour": "fr"},
	}

	d, err := m.Identify(context.Background(), "hallo")
	require.NoError(t, err)
	require.Equal(t, "de", d.Code)

	d, err = m.Identify(context.Background(), "bonjour")
	require.NoError(t, err)
	require.Equal(t, "fr", d.Code)
}

func TestMockUnknownWhenUnscripted(t *testing.T) {
	d, err := Mock{}.Identify(context.Background(), "anything")
	require.NoError(t, err)
	require.Equal(t, core.Unknown, d.Code)
}

func TestRemoteIdentify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/identify", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"code":"sv","confidence":0.93}`))
	}))
	defer srv.Close()

	remote, err := NewRemote(srv.URL, []string{"sv", "da"})
	require.NoError(t, err)

	d, err := remote.Identify(context.Background(), "god morgon")
	require.NoError(t, err)
	require.Equal(t, "sv", d.Code)
	require.InDelta(t, 0.93, d.Confidence, 1e-9)
}

func TestRemoteRetriesThenFails(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote, err := NewRemote(srv.URL, nil)
	require.NoError(t, err)
	remote.MaxRetries = 2
	remote.Backoff = time.Millisecond

	_, err = remote.Identify(context.Background(), "text")
	require.Error(t, err)
	require.Equal(t, 3, calls)
}

func TestRemoteRequiresBaseURL(t *testing.T) {
	_, err := NewRemote("", nil)
	require.Error(t, err)
}

type countingDetector struct {
	calls int
	err   error
}

func (d *countingDetector) Name() string    { return "counting" }
func (d *countingDetector) Codes() []string { return []string{"de"} }

func (d *countingDetector) Identify(_ context.Context, _ string) (core.Detection, error) {
	d.calls++
	if d.err != nil {
		return core.Detection{}, d.err
	}
	return core.Detection{Code: "de", Confidence: 0.8}, nil
}

func TestCachedHitsSkipDetector(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	inner := &countingDetector{}
	cached := Cached{Detector: inner, Cache: c}

	first, err := cached.Identify(context.Background(), "guten tag")
	require.NoError(t, err)
	second, err := cached.Identify(context.Background(), "guten tag")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, inner.calls)
}

func TestCachedNeverCachesErrors(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	inner := &countingDetector{err: errors.New("down")}
	cached := Cached{Detector: inner, Cache: c}

	_, err = cached.Identify(context.Background(), "x")
	require.Error(t, err)
	_, err = cached.Identify(context.Background(), "x")
	require.Error(t, err)
	require.Equal(t, 2, inner.calls)
}

func TestWhatlangCodesStable(t *testing.T) {
	d := Whatlang{}
	codes := d.Codes()
	require.Contains(t, codes, "de")
	require.Contains(t, codes, "zh")

	// Codes returns a copy, not the backing array.
	codes[0] = "mutated"
	require.NotEqual(t, codes[0], d.Codes()[0])
}
