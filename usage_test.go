package cmdbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsage(t *testing.T) {
	params, err := ParseUsage(`<srcPath> [dstPath] [rest...] [--force|-f] [--level=3] [--ratio=0.5] [--msg="hi there"]`)
	require.NoError(t, err)
	require.Len(t, params, 7)

	src := params[0]
	assert.Equal(t, "srcPath", src.name)
	assert.Equal(t, KindString, src.kind)
	assert.False(t, src.option)
	assert.False(t, src.defSet)

	dst := params[1]
	assert.True(t, dst.defSet)
	assert.Equal(t, "", dst.defRaw)

	rest := params[2]
	assert.True(t, rest.variadic)

	force := params[3]
	assert.True(t, force.option)
	assert.Equal(t, KindBool, force.kind)
	assert.False(t, force.defSet)
	assert.Equal(t, []string{"f"}, force.aliases)

	level := params[4]
	assert.Equal(t, KindInt, level.kind)
	assert.Equal(t, 3, level.defRaw)

	ratio := params[5]
	assert.Equal(t, KindFloat, ratio.kind)
	assert.Equal(t, 0.5, ratio.defRaw)

	msg := params[6]
	assert.Equal(t, KindString, msg.kind)
	assert.Equal(t, "hi there", msg.defRaw)
}

func TestParseUsageLiteralKinds(t *testing.T) {
	tests := []struct {
		spec string
		kind Kind
		def  any
	}{
		{"[--verbose=false]", KindBool, false},
		{"[--jobs=1]", KindInt, 1},
		{"[--timeout=2.5]", KindFloat, 2.5},
		{"[--name=world]", KindString, "world"},
		{`[--path="a \"b\""]`, KindString, `a "b"`},
	}
	for _, tt := range tests {
		params, err := ParseUsage(tt.spec)
		require.NoError(t, err, tt.spec)
		require.Len(t, params, 1, tt.spec)
		assert.Equal(t, tt.kind, params[0].kind, tt.spec)
		assert.Equal(t, tt.def, params[0].defRaw, tt.spec)
	}
}

func TestParseUsageEmpty(t *testing.T) {
	params, err := ParseUsage("")
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestParseUsageErrors(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr string
	}{
		{"plain", "expected '<' or '['"},
		{"<rest...>", "always optional"},
		{"<name", `expected ">"`},
		{"[--force", `expected "]"`},
		{"[-f]", "options start with '--'"},
		{"[--force|force]", "must start with a dash"},
		{"[--level=]", "expected a default value"},
		{`[--msg="open]`, "unterminated quoted default"},
		{"<>", "expected a name"},
	}
	for _, tt := range tests {
		_, err := ParseUsage(tt.spec)
		require.Error(t, err, tt.spec)
		assert.Contains(t, err.Error(), tt.wantErr, tt.spec)
	}
}

func TestParseUsageMatchesBuilder(t *testing.T) {
	fromSpec := &Command{Name: "greet", Spec: "<name> [--shout]", Handler: okHandler}
	fromBuilder := &Command{
		Name:    "greet",
		Params:  []*Param{String("name"), Bool("shout").Option()},
		Handler: okHandler,
	}
	bs, err := fromSpec.bind()
	require.NoError(t, err)
	bb, err := fromBuilder.bind()
	require.NoError(t, err)

	assert.Equal(t, bb.argsUsage, bs.argsUsage)
	assert.Equal(t, bb.optionNames, bs.optionNames)
	assert.Equal(t, bb.slots, bs.slots)
}

func TestMustParseUsagePanics(t *testing.T) {
	assert.Panics(t, func() { MustParseUsage("<oops") })
	assert.NotPanics(t, func() { MustParseUsage("<ok>") })
}
