// This file is part of AetherARM.
//
// AetherARM is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// AetherARM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with AetherARM.  If not, see <https://www.gnu.org/licenses/>.

package archivefs_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aetherarm/arm7tdmi/archivefs"
	"github.com/aetherarm/arm7tdmi/test"
)

const plainContents = "plain file contents\n"
const zippedContents = "zipped rom image data\n"

// makeFixtures builds a small directory tree for the tests to resolve
// against: a plain file and a zip archive containing a file at its root and
// another inside a subdirectory.
func makeFixtures(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "testfile"), []byte(plainContents), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Create(filepath.Join(dir, "testarchive.zip"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range []string{"game.bin", "nested/inner.bin"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(zippedContents)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestPathSet(t *testing.T) {
	dir := makeFixtures(t)

	var afs archivefs.Path
	defer afs.Close()

	// non-existent file
	err := afs.Set(filepath.Join(dir, "foo"), false)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, afs.String(), "")

	// a real directory
	err = afs.Set(dir, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), dir)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, !afs.InArchive())

	// a real file
	path := filepath.Join(dir, "testfile")
	err = afs.Set(path, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())
	test.ExpectSuccess(t, !afs.InArchive())
	test.ExpectEquality(t, afs.Base(), "testfile")
	test.ExpectEquality(t, afs.Dir(), dir)

	// the root of an archive is treated as a directory
	path = filepath.Join(dir, "testarchive.zip")
	err = afs.Set(path, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	// a file inside an archive
	path = filepath.Join(dir, "testarchive.zip", "game.bin")
	err = afs.Set(path, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	// a file inside a directory inside an archive
	path = filepath.Join(dir, "testarchive.zip", "nested", "inner.bin")
	err = afs.Set(path, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())
}

func TestPathSetFallback(t *testing.T) {
	dir := makeFixtures(t)

	var afs archivefs.Path
	defer afs.Close()

	// with fallback enabled a bad final element settles on the most recent
	// valid sub-path
	err := afs.Set(filepath.Join(dir, "foo"), true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), dir)
	test.ExpectSuccess(t, afs.IsDir())

	err = afs.Set(filepath.Join(dir, "testarchive.zip", "foo"), true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), filepath.Join(dir, "testarchive.zip"))
	test.ExpectSuccess(t, afs.IsDir())
}

func TestOpen(t *testing.T) {
	dir := makeFixtures(t)

	// a plain file
	r, sz, err := archivefs.Open(filepath.Join(dir, "testfile"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sz, len(plainContents))
	d, err := io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(d), plainContents)

	// a file inside an archive
	r, sz, err = archivefs.Open(filepath.Join(dir, "testarchive.zip", "game.bin"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sz, len(zippedContents))
	d, err = io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(d), zippedContents)

	// opened data is seekable even when it came from inside an archive
	n, err := r.Seek(7, io.SeekStart)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, int64(7))
	d, err = io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(d), zippedContents[7:])

	// a file that doesn't exist
	_, _, err = archivefs.Open(filepath.Join(dir, "foo"))
	test.ExpectFailure(t, err)
}
