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

package cartridgeloader

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aetherarm/arm7tdmi/archivefs"
	"github.com/aetherarm/arm7tdmi/curated"
	"github.com/aetherarm/arm7tdmi/logger"
)

// MaxCartridgeSize is the largest cartridge image the bus's three ROM
// mirrors can address.
const MaxCartridgeSize = 32 * 1024 * 1024

// BIOSSize is the fixed size of the BIOS image mapped read-only at
// address 0.
const BIOSSize = 16 * 1024

// HeaderSize is the number of leading bytes of a cartridge image that make
// up its header.
const HeaderSize = 192

// TitleOffset and TitleLength locate the ASCII title field within the
// cartridge header.
const (
	TitleOffset = 0xA0
	TitleLength = 0xAC - 0xA0
)

// Loader abstracts all the ways cartridge (or BIOS) data can be loaded for
// the emulation: a local file, an HTTP(S) URL, or an embedded byte slice
// (for example data included with go:embed).
type Loader struct {
	io.ReadSeeker

	// the name to use for the cartridge represented by Loader
	Name string

	// filename of cartridge being loaded. In the case of embedded data, this
	// field will contain the name of the data provided to the
	// NewLoaderFromData() function.
	Filename string

	// expected hash of the loaded cartridge. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data.
	//
	// the value of HashSHA1 will be checked on a call to Loader.Open(). if the
	// string is empty then that check passes.
	HashSHA1 string

	// HashMD5 is an alternative to HashSHA1.
	HashMD5 string

	// cartridge data. empty until Open() is called unless the loader was
	// created by NewLoaderFromData().
	//
	// the pointer-to-a-slice construct allows the cartridge to be
	// loaded/changed by a Loader instance that has been passed by value.
	Data *[]byte

	data *bytes.Reader

	// whether the Loader was created with NewLoaderFromData()
	embedded bool
}

// ErrNoFilename is returned when a Loader is created with no filename.
var ErrNoFilename = errors.New("no filename")

// NewLoaderFromFilename is the preferred method of initialisation for the
// Loader type when loading data from a filename or an http(s) URL.
//
// Filenames can contain whitespace, including leading and trailing
// whitespace, but cannot consist only of whitespace.
func NewLoaderFromFilename(filename string) (Loader, error) {
	if strings.TrimSpace(filename) == "" {
		return Loader{}, curated.Errorf("cartridgeloader: %v", ErrNoFilename)
	}

	if u, err := url.Parse(filename); err != nil || u.Scheme == "" {
		abs, absErr := filepath.Abs(filename)
		if absErr != nil {
			return Loader{}, curated.Errorf("cartridgeloader: %v", absErr)
		}
		filename = abs
	}

	ld := Loader{Filename: filename}

	data := make([]byte, 0)
	ld.Data = &data
	ld.Name = decideOnName(ld)

	return ld, nil
}

// NewLoaderFromData is the preferred method of initialisation for the
// Loader type when loading data from a byte array already in memory. A
// good way of loading embedded data (using go:embed) into the emulator.
//
// The name argument should not include a file extension because it won't be
// used.
func NewLoaderFromData(name string, data []byte) (Loader, error) {
	if len(data) == 0 {
		return Loader{}, curated.Errorf("cartridgeloader: embedded data is empty")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Loader{}, curated.Errorf("cartridgeloader: no name for embedded data")
	}

	ld := Loader{
		Filename: name,
		Data:     &data,
		data:     bytes.NewReader(data),
		embedded: true,
		HashSHA1: fmt.Sprintf("%x", sha1.Sum(data)),
		HashMD5:  fmt.Sprintf("%x", md5.Sum(data)),
	}
	ld.Name = decideOnName(ld)

	return ld, nil
}

// Close is a no-op for this Loader, retained so the type continues to
// satisfy io.Closer for callers that defer ld.Close() unconditionally.
//
// Implements the io.Closer interface.
func (ld Loader) Close() error {
	return nil
}

// Implements the io.Reader interface.
func (ld Loader) Read(p []byte) (int, error) {
	if ld.data == nil {
		return 0, io.EOF
	}
	return ld.data.Read(p)
}

// Implements the io.Seeker interface.
func (ld Loader) Seek(offset int64, whence int) (int64, error) {
	if ld.data == nil {
		return 0, nil
	}
	return ld.data.Seek(offset, whence)
}

// Open reads the cartridge data referenced by the Loader, from a local
// file, an http(s) URL, or (if already embedded) a no-op.
func (ld *Loader) Open() error {
	if ld.embedded {
		return nil
	}

	if ld.Data != nil && len(*ld.Data) > 0 {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(ld.Filename); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf("loader: %v", err)
		}
		defer resp.Body.Close()

		*ld.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("loader: %v", err)
		}
	default:
		// archivefs transparently resolves a path that names a file
		// inside a zip archive (eg. "roms.zip/game.bin"); for a plain
		// file on disk it behaves exactly like os.Open.
		rs, size, err := archivefs.Open(ld.Filename)
		if err != nil {
			return curated.Errorf("loader: %v", err)
		}
		if c, ok := rs.(io.Closer); ok {
			defer c.Close()
		}

		buf := make([]byte, size)
		if _, err := io.ReadFull(rs, buf); err != nil {
			return curated.Errorf("loader: %v", err)
		}
		*ld.Data = buf
	}

	if len(*ld.Data) > MaxCartridgeSize {
		return curated.Errorf("loader: cartridge image exceeds %d bytes", MaxCartridgeSize)
	}

	ld.data = bytes.NewReader(*ld.Data)

	hash := fmt.Sprintf("%x", sha1.Sum(*ld.Data))
	if ld.HashSHA1 != "" && ld.HashSHA1 != hash {
		return curated.Errorf("loader: unexpected SHA1 hash value")
	}
	ld.HashSHA1 = hash

	hash = fmt.Sprintf("%x", md5.Sum(*ld.Data))
	if ld.HashMD5 != "" && ld.HashMD5 != hash {
		return curated.Errorf("loader: unexpected MD5 hash value")
	}
	ld.HashMD5 = hash

	logger.Logf("loader", "loaded %d bytes (%s)", len(*ld.Data), ld.Filename)

	return nil
}

// Title extracts the ASCII title string from the cartridge header (bytes
// 0xA0..0xAC). Returns the empty string if the image ends before the end
// of the title field.
func (ld *Loader) Title() string {
	if ld.Data == nil || len(*ld.Data) < TitleOffset+TitleLength {
		return ""
	}
	raw := (*ld.Data)[TitleOffset : TitleOffset+TitleLength]
	end := bytes.IndexByte(raw, 0)
	if end < 0 {
		end = len(raw)
	}
	return strings.TrimSpace(string(raw[:end]))
}

// LoadBIOS reads a fixed-size BIOS image from filename. It does not go
// through the Loader/Open machinery above because the BIOS is always a
// local file of exactly BIOSSize bytes, never a cartridge-shaped source.
func LoadBIOS(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("bios: %v", err)
	}
	if len(data) != BIOSSize {
		return nil, curated.Errorf("bios: expected %d bytes, got %d", BIOSSize, len(data))
	}
	return data, nil
}
