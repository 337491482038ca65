package protocols

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/els0r/netproto/pkg/protocols/encoding"
	"github.com/els0r/telemetry/logging"
)

// DefaultPath returns the location of the platform's protocols file
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = `C:\Windows`
		}
		return filepath.Join(root, "System32", "drivers", "etc", "protocol")
	}
	return "/etc/protocols"
}

// FileDirectory resolves protocols from a file in protocols(5) format. The file is
// re-read on every call, nothing is cached
type FileDirectory struct {
	path     string
	fsys     fs.FS
	encoding encoding.Type
}

// FileOption configures a FileDirectory
type FileOption func(*FileDirectory)

// WithFS reads the protocols file from fsys instead of the host file system. The path
// must then be a valid fs.FS path
func WithFS(fsys fs.FS) FileOption {
	return func(d *FileDirectory) {
		d.fsys = fsys
	}
}

// WithEncoding overrides the encoding otherwise derived from the file extension
func WithEncoding(t encoding.Type) FileOption {
	return func(d *FileDirectory) {
		d.encoding = t
	}
}

// NewFileDirectory creates a directory backed by the protocols file at path. An empty
// path selects DefaultPath(). Files ending in .lz4 or .zst are decompressed on the fly
func NewFileDirectory(path string, opts ...FileOption) *FileDirectory {
	if path == "" {
		path = DefaultPath()
	}
	d := &FileDirectory{
		path:     path,
		encoding: encoding.TypeFromPath(path),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns the path of the protocols file
func (d *FileDirectory) Path() string {
	return d.path
}

// Validate checks that the protocols file can be opened and decoded
func (d *FileDirectory) Validate() error {
	rc, err := d.open()
	if err != nil {
		return err
	}
	return rc.Close()
}

// ByName implements Directory. Both names and aliases match exactly
func (d *FileDirectory) ByName(name string) (*Record, error) {
	skip, err := CheckName(name)
	if skip {
		return nil, err
	}
	return d.find(func(r *Record) bool {
		if r.name == name {
			return true
		}
		for _, alias := range r.aliases {
			if alias == name {
				return true
			}
		}
		return false
	}), nil
}

// ByNumber implements Directory
func (d *FileDirectory) ByNumber(number int) (*Record, error) {
	skip, err := CheckNumber(int64(number))
	if skip {
		return nil, err
	}
	return d.find(func(r *Record) bool {
		return r.number == number
	}), nil
}

// All implements Enumerator. A read error ends the sequence early
func (d *FileDirectory) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		if err := d.walk(yield); err != nil {
			logging.Logger().With("path", d.path, "error", err).Debug("protocols file walk ended early")
		}
	}
}

func (d *FileDirectory) find(match func(*Record) bool) (found *Record) {
	err := d.walk(func(r *Record) bool {
		if match(r) {
			found = r
			return false
		}
		return true
	})
	if err != nil {
		logging.Logger().With("path", d.path, "error", err).Debug("protocols file lookup ended early")
	}
	return found
}

func (d *FileDirectory) open() (io.ReadCloser, error) {
	var (
		f   io.ReadCloser
		err error
	)
	if d.fsys != nil {
		f, err = d.fsys.Open(d.path)
	} else {
		f, err = os.Open(filepath.Clean(d.path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open protocols file: %w", err)
	}

	dec, err := encoding.NewReader(d.encoding, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &decodedFile{ReadCloser: dec, file: f}, nil
}

// walk streams the records of the file to yield until yield returns false
func (d *FileDirectory) walk(yield func(*Record) bool) (err error) {
	rc, err := d.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		r, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if !yield(r) {
			return nil
		}
	}
	return scanner.Err()
}

// parseLine parses a single protocols(5) line: name number [aliases...] [# comment]
func parseLine(line string) (*Record, bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, false
	}

	number, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil || number < 0 {
		return nil, false
	}
	return newRecord(fields[0], fields[2:], int(number)), true
}

type decodedFile struct {
	io.ReadCloser
	file io.Closer
}

func (f *decodedFile) Close() error {
	derr := f.ReadCloser.Close()
	if err := f.file.Close(); err != nil {
		return err
	}
	return derr
}
