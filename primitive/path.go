package primitive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/validation"
)

// ErrProbe wraps any filesystem failure other than a missing path.
// Such failures are fatal: they abort parsing instead of producing
// a validation error.
var ErrProbe = errors.New("filesystem probe failed")

// PathKind restricts the type of filesystem entry a path must denote.
type PathKind int

const (
	// EitherKind accepts files and directories.
	EitherKind PathKind = iota
	// FileKind requires a regular file.
	FileKind
	// DirectoryKind requires a directory.
	DirectoryKind
)

// Existence is the policy a path must satisfy regarding its existence.
type Existence int

const (
	// MayExist accepts existing and absent paths.
	MayExist Existence = iota
	// MustExist requires the path to exist.
	MustExist
	// MustNotExist requires the path to be absent.
	MustNotExist
)

// FileSystem answers the queries needed to check path values.
// Each query is independent, repeatable and free of side effects.
// A missing path is a normal outcome (false, nil), never an error.
type FileSystem interface {
	Exists(ctx context.Context, path string) (bool, error)
	IsRegularFile(ctx context.Context, path string) (bool, error)
	IsDirectory(ctx context.Context, path string) (bool, error)
}

// OS is the FileSystem of the host operating system.
type OS struct{}

// Exists implements FileSystem.
func (OS) Exists(ctx context.Context, path string) (bool, error) {
	_, err := stat(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return err == nil, err
}

// IsRegularFile implements FileSystem.
func (OS) IsRegularFile(ctx context.Context, path string) (bool, error) {
	info, err := stat(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return info.Mode().IsRegular(), nil
}

// IsDirectory implements FileSystem.
func (OS) IsDirectory(ctx context.Context, path string) (bool, error) {
	info, err := stat(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return info.IsDir(), nil
}

func stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(path)
}

// PathOpt sets options on a path primitive.
type PathOpt func(p *path)

// WithFileSystem sets the filesystem probed by a path primitive.
func WithFileSystem(fsys FileSystem) PathOpt {
	return func(p *path) { p.fsys = fsys }
}

type path struct {
	kind   PathKind
	exists Existence
	fsys   FileSystem
}

// Path returns a primitive checking a path against a kind and an existence
// policy. Paths are probed on the host filesystem unless WithFileSystem is used.
func Path(kind PathKind, exists Existence, opts ...PathOpt) Primitive[string] {
	p := path{kind: kind, exists: exists, fsys: OS{}}
	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// File returns a path primitive requiring a regular file.
func File(exists Existence, opts ...PathOpt) Primitive[string] {
	return Path(FileKind, exists, opts...)
}

// Directory returns a path primitive requiring a directory.
func Directory(exists Existence, opts ...PathOpt) Primitive[string] {
	return Path(DirectoryKind, exists, opts...)
}

func (p path) Validate(ctx context.Context, token *string, _ config.Config) (string, error) {
	if token == nil {
		return "", missingToken()
	}

	value := *token

	exists, err := p.fsys.Exists(ctx, value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrProbe, value, err)
	}

	switch {
	case p.exists == MustExist && !exists:
		return "", pathErr("Path ", value, " must exist.")
	case p.exists == MustNotExist && exists:
		return "", pathErr("Path ", value, " must not exist.")
	case !exists || p.kind == EitherKind:
		return value, nil
	}

	switch p.kind {
	case FileKind:
		isFile, err := p.fsys.IsRegularFile(ctx, value)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrProbe, value, err)
		}
		if !isFile {
			return "", pathErr("Expected path ", value, " to be a regular file.")
		}

	case DirectoryKind:
		isDir, err := p.fsys.IsDirectory(ctx, value)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrProbe, value, err)
		}
		if !isDir {
			return "", pathErr("Expected path ", value, " to be a directory.")
		}
	}

	return value, nil
}

func (p path) TypeName() string {
	switch p.kind {
	case FileKind:
		return "file"
	case DirectoryKind:
		return "directory"
	default:
		return "path"
	}
}

func (p path) Help() help.Span {
	var adjective, noun string

	switch p.exists {
	case MustExist:
		adjective = "An existing "
	case MustNotExist:
		adjective = "A non-existent "
	default:
		adjective = "A "
	}

	switch p.kind {
	case FileKind:
		noun = "file."
	case DirectoryKind:
		noun = "directory."
	default:
		noun = "file or directory."
	}

	return help.Text(adjective + noun)
}

func (path) Choices() []string { return nil }
func (path) IsBool() bool      { return false }
func (path) isPrimitive()      {}

func pathErr(prefix, value, suffix string) *validation.Error {
	return validation.Newf(validation.InvalidValue, help.Text(prefix), help.Code("'"+value+"'"), help.Text(suffix))
}
