package archive

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/agentstation/menumap/pkg/errors"
)

// codePages maps the spellings people actually type to charmaps.
var codePages = map[string]*charmap.Charmap{
	"cp437":        charmap.CodePage437,
	"ibm437":       charmap.CodePage437,
	"437":          charmap.CodePage437,
	"cp866":        charmap.CodePage866,
	"ibm866":       charmap.CodePage866,
	"866":          charmap.CodePage866,
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"win1251":      charmap.Windows1251,
	"koi8-r":       charmap.KOI8R,
	"koi8r":        charmap.KOI8R,
}

// Encoding resolves a code page by name. Short aliases such as cp866 are
// checked first, then the IANA registry.
func Encoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if cm, ok := codePages[key]; ok {
		return cm, nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return nil, errors.NewConfigError("archive", "unknown encoding "+name, err)
	}
	return enc, nil
}

// decode converts raw bytes with enc and drops bytes the code page cannot
// represent.
func decode(enc encoding.Encoding, raw []byte) string {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(string(out), "\uFFFD", "")
}
