package rescale

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/pxshift/value"
)

func mustNew(t *testing.T, bps float64, opts ...Option) *Rescaler {
	t.Helper()
	r, err := New(bps, opts...)
	require.NoError(t, err)

	return r
}

func processString(t *testing.T, r *Rescaler, line string) (string, LineResult) {
	t.Helper()
	out, res, err := r.Process(nil, []byte(line))
	require.NoError(t, err)

	return string(out), res
}

func TestNew(t *testing.T) {
	r := mustNew(t, 100)
	assert.Equal(t, 100.0, r.BasisPoints())
	assert.InDelta(t, 1.01, r.Factor(), 1e-15)
	assert.Equal(t, value.DefaultMaxDepth, r.maxDepth)
	assert.Equal(t, defaultReadBufferSize, r.bufferSize)
	assert.Zero(t, r.flushEvery)
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		opt    Option
		errMsg string
	}{
		{"zero depth", WithMaxDepth(0), "max depth must be positive"},
		{"tiny buffer", WithReadBufferSize(8), "read buffer size must be at least"},
		{"negative flush", WithFlushEvery(-1), "flush interval must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(0, tt.opt)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProcess_WorkedExample(t *testing.T) {
	r := mustNew(t, 100)
	line := `{"sym":"X","bid":"100","ask":100,"meta":{"price":50,"note":"ok"},"tags":[{"bid":10}]}`

	out, res := processString(t, r, line)
	require.True(t, strings.HasSuffix(out, "\n"))
	require.Equal(t, 4, res.Rescaled)
	require.False(t, res.Blank)

	v, err := value.Parse([]byte(out))
	require.NoError(t, err)

	keys := make([]string, 0, len(v.Members()))
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	require.Equal(t, []string{"sym", "bid", "ask", "meta", "tags"}, keys)

	sym, _ := v.Get("sym")
	assert.Equal(t, "X", sym.Text())

	requireNumber := func(v value.Value, want float64) {
		t.Helper()
		require.Equal(t, value.KindNumber, v.Kind())
		f, err := v.Float64()
		require.NoError(t, err)
		assert.InDelta(t, want, f, 1e-9)
	}

	bid, _ := v.Get("bid")
	requireNumber(bid, 101.0)
	ask, _ := v.Get("ask")
	requireNumber(ask, 101.0)

	meta, _ := v.Get("meta")
	price, _ := meta.Get("price")
	requireNumber(price, 50.5)
	note, _ := meta.Get("note")
	assert.Equal(t, "ok", note.Text())

	tags, _ := v.Get("tags")
	require.Len(t, tags.Elems(), 1)
	tagBid, _ := tags.Elems()[0].Get("bid")
	requireNumber(tagBid, 10.1)
}

func TestProcess_SelectiveRescale(t *testing.T) {
	r := mustNew(t, 10000) // k = 2

	tests := []struct {
		name     string
		in       string
		want     string
		rescaled int
	}{
		{
			name:     "worked example doubled",
			in:       `{"sym":"X","bid":"100","ask":100,"meta":{"price":50,"note":"ok"},"tags":[{"bid":10}]}`,
			want:     `{"sym":"X","bid":200.0,"ask":200.0,"meta":{"price":100.0,"note":"ok"},"tags":[{"bid":20.0}]}`,
			rescaled: 4,
		},
		{
			name:     "every price key",
			in:       `{"bid":1,"ask":1,"best_bid":1,"best_ask":1,"bid_price":1,"ask_price":1,"price":1,"px":1,"mid":1}`,
			want:     `{"bid":2.0,"ask":2.0,"best_bid":2.0,"best_ask":2.0,"bid_price":2.0,"ask_price":2.0,"price":2.0,"px":2.0,"mid":2.0}`,
			rescaled: 9,
		},
		{
			name:     "non-price numbers untouched",
			in:       `{"qty":5,"ts":1700000000000000000,"seq":1.50,"bid":1}`,
			want:     `{"qty":5,"ts":1700000000000000000,"seq":1.50,"bid":2.0}`,
			rescaled: 1,
		},
		{
			name:     "price key holding object is descended",
			in:       `{"bid":{"px":3,"size":4}}`,
			want:     `{"bid":{"px":6.0,"size":4}}`,
			rescaled: 1,
		},
		{
			name:     "price key holding array is descended",
			in:       `{"price":[{"price":1},2,"3"]}`,
			want:     `{"price":[{"price":2.0},2,"3"]}`,
			rescaled: 1,
		},
		{
			name: "non-numeric price values untouched",
			in:   `{"bid":"n/a","ask":" 1","mid":"NaN","px":true,"price":null,"best_bid":"0x10"}`,
			want: `{"bid":"n/a","ask":" 1","mid":"NaN","px":true,"price":null,"best_bid":"0x10"}`,
		},
		{
			name: "case-sensitive keys",
			in:   `{"Bid":1,"ASK":"2","bidPrice":3}`,
			want: `{"Bid":1,"ASK":"2","bidPrice":3}`,
		},
		{
			name: "non-price key never rescaled at any depth",
			in:   `{"last":10,"book":{"levels":[[101.5,3]]}}`,
			want: `{"last":10,"book":{"levels":[[101.5,3]]}}`,
		},
		{
			name:     "exponent string coerced",
			in:       `{"bid":"1e3","ask":"-.5"}`,
			want:     `{"bid":2000.0,"ask":-1.0}`,
			rescaled: 2,
		},
		{
			name:     "top-level array",
			in:       `[{"ask":1},{"ask":"2"},3]`,
			want:     `[{"ask":2.0},{"ask":4.0},3]`,
			rescaled: 2,
		},
		{
			name:     "depth five",
			in:       `{"a":[{"b":{"c":[{"d":{"mid":1.5}}]}}],"mid":1.5}`,
			want:     `{"a":[{"b":{"c":[{"d":{"mid":3.0}}]}}],"mid":3.0}`,
			rescaled: 2,
		},
		{
			name: "scalar roots pass through",
			in:   `42`,
			want: `42`,
		},
		{
			name: "string root pass through",
			in:   `"bid"`,
			want: `"bid"`,
		},
		{
			name:     "surrounding whitespace trimmed",
			in:       "  {\"bid\" : 1 ,\n \"note\": \"a b\"}  \r\n",
			want:     `{"bid":2.0,"note":"a b"}`,
			rescaled: 1,
		},
		{
			name:     "large result switches to exponent form",
			in:       `{"px":1e16}`,
			want:     `{"px":2e+16}`,
			rescaled: 1,
		},
		{
			name:     "tiny result switches to exponent form",
			in:       `{"px":0.00002}`,
			want:     `{"px":4e-05}`,
			rescaled: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, res := processString(t, r, tt.in)
			require.Equal(t, tt.want+"\n", out)
			require.Equal(t, tt.rescaled, res.Rescaled)
		})
	}
}

func TestProcess_IdentityAtZeroBps(t *testing.T) {
	r := mustNew(t, 0)

	out, res := processString(t, r, `{"bid":100.25,"ask":"99.5","mid":100,"qty":3}`)
	require.Equal(t, `{"bid":100.25,"ask":99.5,"mid":100.0,"qty":3}`+"\n", out)
	require.Equal(t, 3, res.Rescaled)
}

func TestProcess_NegativeBps(t *testing.T) {
	r := mustNew(t, -5000) // k = 0.5

	out, _ := processString(t, r, `{"px":-1.25,"bid":"3"}`)
	require.Equal(t, `{"px":-0.625,"bid":1.5}`+"\n", out)
}

func TestProcess_Blank(t *testing.T) {
	r := mustNew(t, 100)

	for _, line := range []string{"", "\n", "   \t  \r\n", " "} {
		dst := []byte("prefix")
		out, res, err := r.Process(dst, []byte(line))
		require.NoError(t, err)
		require.True(t, res.Blank, "%q", line)
		require.Equal(t, "prefix", string(out))
	}
}

func TestProcess_AppendsToDst(t *testing.T) {
	r := mustNew(t, 10000)

	out, _, err := r.Process([]byte("{}\n"), []byte(`{"bid":1}`))
	require.NoError(t, err)
	require.Equal(t, "{}\n{\"bid\":2.0}\n", string(out))
}

func TestProcess_ParseError(t *testing.T) {
	r := mustNew(t, 100)

	for _, line := range []string{`{"bid":`, `{bid:1}`, `{"bid":1} {"ask":2}`, `not json`, `{"a":1,}`} {
		t.Run(line, func(t *testing.T) {
			dst := []byte("keep")
			out, _, err := r.Process(dst, []byte(line))
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			require.Zero(t, pe.Line)
			require.Contains(t, err.Error(), "invalid JSON")
			require.Equal(t, "keep", string(out))
		})
	}
}

func TestProcess_InvalidUTF8(t *testing.T) {
	r := mustNew(t, 100)

	for _, line := range []string{"{\"note\":\"a\xffb\"}", "{\"note\":\"a\xffb\",\"qty\":1}", "{\"px\":\"1\xc0\"}"} {
		out, _, err := r.Process(nil, []byte(line))

		var pe *ParseError
		require.ErrorAs(t, err, &pe, "line %q", line)
		require.ErrorIs(t, err, value.ErrInvalidUTF8)
		require.Empty(t, out)
	}
}

func TestProcess_MaxDepth(t *testing.T) {
	r := mustNew(t, 100, WithMaxDepth(3))

	_, _, err := r.Process(nil, []byte(`{"a":{"b":{"bid":1}}}`))
	require.NoError(t, err)

	_, _, err = r.Process(nil, []byte(`{"a":{"b":{"c":{"bid":1}}}}`))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.ErrorIs(t, err, value.ErrTooDeep)
}

func TestProcess_NonFinite(t *testing.T) {
	r := mustNew(t, 10000)

	for _, line := range []string{`{"bid":1e308}`, `{"x":[{"ask":"1.5e308"}]}`, `{"px":1e999}`} {
		t.Run(line, func(t *testing.T) {
			_, _, err := r.Process(nil, []byte(line))
			require.ErrorIs(t, err, ErrNonFinite)

			var re *RescaleError
			require.ErrorAs(t, err, &re)
			require.True(t, IsPriceKey(re.Key))
		})
	}
}

func TestWalk(t *testing.T) {
	r := mustNew(t, 10000)

	v, err := value.Parse([]byte(`[{"bid":1},[{"ask":2},{"note":{"mid":"3"}}]]`))
	require.NoError(t, err)

	n, err := r.Walk(v)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, `[{"bid":2.0},[{"ask":4.0},{"note":{"mid":6.0}}]]`, v.String())

	// scalars are a no-op
	n, err = r.Walk(value.Number("5"))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestWalk_ManyRecordsIndependent(t *testing.T) {
	r := mustNew(t, 10000)

	for i := range 50 {
		line := fmt.Sprintf(`{"seq":%d,"bid":%d}`, i, i)
		out, _ := processString(t, r, line)
		require.Equal(t, fmt.Sprintf(`{"seq":%d,"bid":%d.0}`+"\n", i, 2*i), out)
	}
}
