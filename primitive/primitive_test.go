package primitive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/validation"
)

func ptr(s string) *string { return &s }

// fakeFS is an in-memory filesystem: entries map paths to
// true for directories and false for regular files.
type fakeFS struct {
	entries map[string]bool
	fail    error
}

func (f fakeFS) Exists(_ context.Context, path string) (bool, error) {
	if f.fail != nil {
		return false, f.fail
	}
	_, ok := f.entries[path]

	return ok, nil
}

func (f fakeFS) IsRegularFile(_ context.Context, path string) (bool, error) {
	dir, ok := f.entries[path]
	return ok && !dir, nil
}

func (f fakeFS) IsDirectory(_ context.Context, path string) (bool, error) {
	dir, ok := f.entries[path]
	return ok && dir, nil
}

func TestBool(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.Default()

	tests := []struct {
		token  *string
		prim   Primitive[bool]
		want   bool
		expErr bool
	}{
		{token: ptr("true"), prim: Bool(), want: true},
		{token: ptr("yes"), prim: Bool(), want: true},
		{token: ptr("on"), prim: Bool(), want: true},
		{token: ptr("1"), prim: Bool(), want: true},
		{token: ptr("n"), prim: Bool(), want: false},
		{token: ptr("off"), prim: Bool(), want: false},
		{token: ptr("TRUE"), prim: Bool(), expErr: true},
		{token: ptr("maybe"), prim: Bool(), expErr: true},
		{token: nil, prim: Bool(), expErr: true},
		{token: nil, prim: BoolIfPresent(true), want: true},
		{token: nil, prim: BoolIfPresent(false), want: false},
	}

	for _, test := range tests {
		got, err := test.prim.Validate(ctx, test.token, cfg)
		if test.expErr {
			require.ErrorIs(t, err, validation.ErrInvalidValue)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, test.want, got)
	}

	got, err := Bool().Validate(ctx, ptr("TRUE"), config.New(config.CaseInsensitive()))
	require.NoError(t, err)
	require.True(t, got)
}

func TestBoolMessage(t *testing.T) {
	t.Parallel()

	_, err := Bool().Validate(context.Background(), ptr("maybe"), config.Default())
	require.EqualError(t, err, "maybe cannot be recognized as valid boolean.")
}

func TestNumbers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.Default()

	n, err := Integer().Validate(ctx, ptr("42"), cfg)
	require.NoError(t, err)
	require.Equal(t, int64(42), n)

	_, err = Integer().Validate(ctx, ptr("4.2"), cfg)
	require.EqualError(t, err, "4.2 is not a integer.")

	_, err = IntegerOf[int8]().Validate(ctx, ptr("300"), cfg)
	require.ErrorIs(t, err, validation.ErrInvalidValue)

	small, err := IntegerOf[int8]().Validate(ctx, ptr("-12"), cfg)
	require.NoError(t, err)
	require.Equal(t, int8(-12), small)

	f, err := Float().Validate(ctx, ptr("4.25"), cfg)
	require.NoError(t, err)
	require.InDelta(t, 4.25, f, 0)

	_, err = Float().Validate(ctx, ptr("four"), cfg)
	require.ErrorIs(t, err, validation.ErrInvalidValue)
}

func TestTextAndDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.Default()

	s, err := Text().Validate(ctx, ptr("-anything"), cfg)
	require.NoError(t, err)
	require.Equal(t, "-anything", s)

	_, err = Text().Validate(ctx, nil, cfg)
	require.ErrorIs(t, err, validation.ErrInvalidValue)

	d, err := Date().Validate(ctx, ptr("2007-12-03"), cfg)
	require.NoError(t, err)
	require.Equal(t, time.Date(2007, 12, 3, 0, 0, 0, 0, time.UTC), d)

	d, err = Date().Validate(ctx, ptr("2007-12-03T10:15:30Z"), cfg)
	require.NoError(t, err)
	require.Equal(t, 10, d.Hour())

	_, err = Date().Validate(ctx, ptr("yesterday"), cfg)
	require.EqualError(t, err, "yesterday is not a valid date.")
}

func TestChoice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	shells := Choice(CaseOf("bash", 1), CaseOf("zsh", 2), CaseOf("sh", 3))

	require.Equal(t, []string{"bash", "zsh", "sh"}, shells.Choices())

	v, err := shells.Validate(ctx, ptr("zsh"), config.Default())
	require.NoError(t, err)
	require.Equal(t, 2, v)

	// Choices ignore the configuration's case sensitivity.
	_, err = shells.Validate(ctx, ptr("ZSH"), config.New(config.CaseInsensitive()))
	require.EqualError(t, err, `Expected one of the following cases: "bash", "zsh", "sh".`)

	require.Panics(t, func() { Enum("a", "b", "a") })
	assert.Equal(t, "choice (bash|zsh|sh)", Describe(shells))
}

func TestPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.Default()
	fsys := WithFileSystem(fakeFS{entries: map[string]bool{"dir": true, "file.txt": false}})

	tests := []struct {
		name   string
		prim   Primitive[string]
		token  string
		expErr string
	}{
		{"existing file", File(MustExist, fsys), "file.txt", ""},
		{"missing file", File(MustExist, fsys), "nope", "Path 'nope' must exist."},
		{"file is dir", File(MustExist, fsys), "dir", "Expected path 'dir' to be a regular file."},
		{"dir is file", Directory(MayExist, fsys), "file.txt", "Expected path 'file.txt' to be a directory."},
		{"must not exist", Path(EitherKind, MustNotExist, fsys), "dir", "Path 'dir' must not exist."},
		{"absent ok", Directory(MayExist, fsys), "new", ""},
		{"either kind", Path(EitherKind, MustExist, fsys), "dir", ""},
	}

	for _, test := range tests {
		got, err := test.prim.Validate(ctx, ptr(test.token), cfg)
		if test.expErr == "" {
			require.NoError(t, err, test.name)
			require.Equal(t, test.token, got)
			continue
		}
		require.EqualError(t, err, test.expErr, test.name)
	}
}

func TestPathProbeFailure(t *testing.T) {
	t.Parallel()

	probe := errors.New("permission denied")
	prim := File(MustExist, WithFileSystem(fakeFS{fail: probe}))

	_, err := prim.Validate(context.Background(), ptr("secret"), config.Default())
	require.ErrorIs(t, err, ErrProbe)
	require.ErrorIs(t, err, probe)

	_, isValidation := validation.As(err)
	require.False(t, isValidation)
}

func TestOSFileSystem(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	exists, err := OS{}.Exists(ctx, dir)
	require.NoError(t, err)
	require.True(t, exists)

	isDir, err := OS{}.IsDirectory(ctx, dir)
	require.NoError(t, err)
	require.True(t, isDir)

	exists, err = OS{}.Exists(ctx, dir+"/missing")
	require.NoError(t, err)
	require.False(t, exists)
}
