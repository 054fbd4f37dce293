package textedit

import (
	"bufio"
	"bytes"
	"errors"
	"hash/crc32"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// EditFile runs editor over fileName and replaces the file if the output differs
// from the input. It reports whether the file changed.
//
// A missing file is edited as if it were empty and is only created when the
// editor produces output. The replacement keeps the permissions and, where
// allowed, the ownership of the original.
func EditFile(fileName string, editor Editor) (bool, error) {
	var in io.Reader
	mode := os.FileMode(0o644)
	var owner *syscall.Stat_t
	f, err := os.Open(fileName)
	switch {
	case err == nil:
		defer f.Close() // nolint:errcheck
		st, err := f.Stat()
		if err != nil {
			return false, err
		}
		mode = st.Mode().Perm()
		owner, _ = st.Sys().(*syscall.Stat_t)
		in = f
	case errors.Is(err, fs.ErrNotExist):
		in = bytes.NewReader(nil)
	default:
		return false, err
	}

	d := filepath.Dir(fileName)
	out, err := os.CreateTemp(d, filepath.Base(fileName)+".tmp")
	if err != nil {
		return false, err
	}
	defer out.Close() // nolint:errcheck
	discard := func(err error) (bool, error) {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return false, err
	}

	// keep a running checksum so we know if we can skip the final rename due to not
	// making any changes. This doesn't need to be a strong hash.
	hIn, hOut := crc32.NewIEEE(), crc32.NewIEEE()
	mr := io.TeeReader(in, hIn)
	mw := io.MultiWriter(hOut, out)
	if err := Edit(mr, mw, editor); err != nil {
		return discard(err)
	}
	if hIn.Sum32() == hOut.Sum32() {
		// we didn't make any changes, so just remove the temp file
		_ = out.Close()
		return false, os.Remove(out.Name())
	}

	if err := out.Chmod(mode); err != nil {
		return discard(err)
	}
	if owner != nil {
		if err := out.Chown(int(owner.Uid), int(owner.Gid)); err != nil && !errors.Is(err, fs.ErrPermission) {
			return discard(err)
		}
	}
	// protect user data: flush the new file to disk before we do the rename
	if err := out.Sync(); err != nil {
		return discard(err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return false, err
	}
	if err := os.Rename(out.Name(), fileName); err != nil {
		_ = os.Remove(out.Name())
		return false, err
	}
	return true, nil
}

// Preview reports whether EditFile would change fileName, without writing
// anything.
func Preview(fileName string, editor Editor) (bool, error) {
	orig, err := os.ReadFile(fileName)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	var edited bytes.Buffer
	if err := Edit(bytes.NewReader(orig), &edited, editor); err != nil {
		return false, err
	}
	return !bytes.Equal(orig, edited.Bytes()), nil
}

func Edit(
	in io.Reader,
	out io.Writer,
	editor Editor,
) error {
	emit := func(lines iter.Seq[string]) error {
		for outLine := range lines {
			if !strings.HasSuffix(outLine, "\n") {
				outLine += "\n"
			}
			if _, err := io.WriteString(out, outLine); err != nil {
				return err
			}
		}
		return nil
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		output, err := editor.Next(scanner.Text())
		if err != nil {
			return err
		}
		if err := emit(output); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	output, err := editor.EOF()
	if err != nil {
		return err
	}
	return emit(output)
}
