package params

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	pf, err := LoadFile("testdata/adder.toml")
	require.NoError(t, err)
	require.Equal(t, "Adder", pf.Name)
	require.Equal(t, "testdata/adder.toml", pf.Path())
	require.Len(t, pf.Params, 4)

	seq, err := pf.Sequence()
	require.NoError(t, err)
	require.Len(t, seq, 4)

	// toml integers decode as int64.
	require.Equal(t, []interface{}{int64(1), int64(2)}, seq[0].Args)
	require.Equal(t, map[string]interface{}{"want": int64(3), "timeout": "5s"}, seq[0].Kwargs)

	require.Equal(t, []interface{}{int64(10), int64(20)}, seq[1].Args)
	require.Equal(t, map[string]interface{}{"timeout": "5s"}, seq[1].Kwargs)

	// entry values win over defaults.
	require.Empty(t, seq[2].Args)
	require.Equal(t, map[string]interface{}{"want": int64(0), "timeout": "1s"}, seq[2].Kwargs)

	require.Empty(t, seq[3].Args)
	require.Equal(t, map[string]interface{}{"timeout": "5s"}, seq[3].Kwargs)
}

func TestDescriptorShapes(t *testing.T) {
	pf, err := LoadFile("testdata/plain.toml")
	require.NoError(t, err)

	ds, err := pf.Descriptors()
	require.NoError(t, err)
	require.Equal(t, []interface{}{
		[]interface{}{[]interface{}{"a"}, map[string]interface{}{}},
		[]interface{}{[]interface{}{"b", "c"}, map[string]interface{}{}},
	}, ds)
}

func TestArgsOnlyEntryKeepsEveryPositional(t *testing.T) {
	doc := `
[[params]]
args = [[1, 2], {c = 3}]
`
	pf, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	seq, err := pf.Sequence()
	require.NoError(t, err)
	require.Len(t, seq, 1)
	require.Len(t, seq[0].Args, 2)
	require.Equal(t, []interface{}{int64(1), int64(2)}, seq[0].Args[0])
	require.Equal(t, map[string]interface{}{"c": int64(3)}, seq[0].Args[1])
	require.Empty(t, seq[0].Kwargs)
}

func TestEmptyEntryIsEmptyPositional(t *testing.T) {
	pf, err := Decode(strings.NewReader("[[params]]\n"))
	require.NoError(t, err)

	seq, err := pf.Sequence()
	require.NoError(t, err)
	require.Len(t, seq, 1)
	require.Empty(t, seq[0].Args)
	require.Empty(t, seq[0].Kwargs)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("testdata/empty.toml")
	require.Error(t, err)

	_, err = LoadFile("testdata/broken.toml")
	require.Error(t, err)

	_, err = LoadFile("testdata/does-not-exist.toml")
	require.Error(t, err)
}

func TestDecodeReportsEveryBadKeyword(t *testing.T) {
	doc := `
[defaults]
bad-key = 1

[[params]]
[params.kwargs]
9lives = 2
ok_key = 3
`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 errors occurred")
	require.Contains(t, err.Error(), `defaults: keyword "bad-key"`)
	require.Contains(t, err.Error(), `params[0]: keyword "9lives"`)
}
