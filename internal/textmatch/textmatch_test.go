package textmatch

import (
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const output = `
 Total atoms:     3
 FINAL ENERGY: -76.3861099088 a.u.
 ...
 FINAL ENERGY: -76.3900000000 a.u.
`

func TestMustCapture(t *testing.T) {
	v, err := MustCapture(`FINAL ENERGY: (-?\d+\.\d+)`, output)
	require.NoError(t, err)
	assert.Equal(t, "-76.3861099088", v, "the leftmost match wins")
}

func TestMustMatch_NotFound(t *testing.T) {
	long := strings.Repeat("x", 1000)
	_, err := MustMatch(`Total orbitals:\s*(\d+)`, long)
	require.ErrorIs(t, err, qcerr.ErrPatternNotFound)

	var pnf *qcerr.PatternNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, `Total orbitals:\s*(\d+)`, pnf.Pattern)
	assert.Less(t, len(pnf.Excerpt), len(long))
}

func TestMustCapture_NoGroupPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = MustCapture(`FINAL ENERGY`, output) })
}

func TestCompile_ReusesCachedPattern(t *testing.T) {
	assert.Same(t, Compile(`a+b`), Compile(`a+b`))
	assert.Panics(t, func() { Compile(`(unclosed`) })
}

func TestFindAll(t *testing.T) {
	var energies []string
	for m := range FindAll(`FINAL ENERGY: (-?\d+\.\d+)`, output) {
		energies = append(energies, m[1])
	}
	assert.Equal(t, []string{"-76.3861099088", "-76.3900000000"}, energies)

	assert.Empty(t, slices.Collect(FindAll(`CARTESIAN GRADIENT`, output)))
}

func TestFindAll_AnchorsSeeTheWholeText(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		text    string
	}{
		{"start of text", `^a`, "aaa"},
		{"start of line", `(?m)^FINAL`, "FINAL 1\n FINAL 2\nFINAL 3\n"},
		{"word boundary", `\bab`, "ab abab xab"},
		{"end of text", `a$`, "aaa"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			want := regexp.MustCompile(tc.pattern).FindAllString(tc.text, -1)
			var got []string
			for m := range FindAll(tc.pattern, tc.text) {
				got = append(got, m[0])
			}
			assert.Equal(t, want, got)
		})
	}
	assert.Len(t, slices.Collect(FindAll(`^a`, "aaa")), 1)
}

func TestFindAll_StopsEarlyAndRestarts(t *testing.T) {
	seq := FindAll(`\d`, "1 2 3 4")
	var first []string
	for m := range seq {
		first = append(first, m[0])
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1", "2"}, first)
	assert.Len(t, slices.Collect(seq), 4)
}

func TestFindAll_EmptyMatchesAdvance(t *testing.T) {
	got := slices.Collect(FindAll(`x*`, "ab"))
	assert.Len(t, got, 3)
}

func TestFindAll_UnmatchedGroupIsEmpty(t *testing.T) {
	got := slices.Collect(FindAll(`a(b)?`, "a ab"))
	require.Len(t, got, 2)
	assert.Equal(t, []string{"a", ""}, got[0])
	assert.Equal(t, []string{"ab", "b"}, got[1])
}

func TestFindAllIndex(t *testing.T) {
	var starts []int
	for start, end := range FindAllIndex(`FINAL ENERGY`, output) {
		assert.Equal(t, "FINAL ENERGY", output[start:end])
		starts = append(starts, start)
	}
	assert.Len(t, starts, 2)
	assert.Less(t, starts[0], starts[1])
}

func TestParseNumbers(t *testing.T) {
	f, err := ParseFloat("-1.5e-03")
	require.NoError(t, err)
	assert.Equal(t, -1.5e-03, f)

	n, err := ParseInt("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	fs, err := ParseFloats([]string{"1", "2.5", "-3"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3}, fs)
}

func TestParseNumbers_Malformed(t *testing.T) {
	testCases := []struct {
		name  string
		parse func() error
		text  string
		kind  string
	}{
		{"float", func() error { _, err := ParseFloat("1.2.3"); return err }, "1.2.3", "float"},
		{"int", func() error { _, err := ParseInt("3.0"); return err }, "3.0", "integer"},
		{"floats", func() error { _, err := ParseFloats([]string{"1", "nan?"}); return err }, "nan?", "float"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.parse()
			require.ErrorIs(t, err, qcerr.ErrMalformedNumber)

			var mn *qcerr.MalformedNumberError
			require.ErrorAs(t, err, &mn)
			assert.Equal(t, tc.text, mn.Text)
			assert.Equal(t, tc.kind, mn.Kind)
		})
	}
}
