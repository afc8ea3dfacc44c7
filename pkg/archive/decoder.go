// Package archive recovers correctly encoded file names from ZIP archives
// whose Cyrillic names were written in a regional code page without the
// UTF-8 flag, and lists the dish images they contain.
package archive

import (
	"bytes"
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding"
)

// Central directory file header layout.
const (
	centralSignature = "PK\x01\x02"
	centralHeaderLen = 46
	nameLenOffset    = 28
)

// Correction pairs the name a legacy unpacker shows with the real name.
type Correction struct {
	Legacy   string `json:"legacy" yaml:"legacy"`
	Regional string `json:"regional" yaml:"regional"`
}

// Names maps legacy-decoded entry names to their regional decoding. The zero
// value is an empty map that resolves every name to itself.
type Names struct {
	index map[string]string
	order []Correction
}

// Resolve returns the corrected name for legacy, or legacy unchanged.
func (n Names) Resolve(legacy string) string {
	if regional, ok := n.index[legacy]; ok {
		return regional
	}
	return legacy
}

// Len reports the number of corrections.
func (n Names) Len() int {
	return len(n.order)
}

// Corrections lists the corrections in central directory order.
func (n Names) Corrections() []Correction {
	out := make([]Correction, len(n.order))
	copy(out, n.order)
	return out
}

func (n *Names) add(legacy, regional string) {
	if n.index == nil {
		n.index = make(map[string]string)
	}
	if _, seen := n.index[legacy]; seen {
		n.index[legacy] = regional
		return
	}
	n.index[legacy] = regional
	n.order = append(n.order, Correction{Legacy: legacy, Regional: regional})
}

// Decoder scans raw archive bytes with a fixed pair of code pages.
type Decoder struct {
	legacy   encoding.Encoding
	regional encoding.Encoding
}

// NewDecoder creates a Decoder. Without options it assumes CP437 as the
// legacy page and windows-1251 as the regional one.
func NewDecoder(opts ...Option) (*Decoder, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Decoder{legacy: o.legacy, regional: o.regional}, nil
}

// Scan walks every central directory record in data. Malformed records are
// skipped and the scan continues one byte further.
func (d *Decoder) Scan(data []byte) Names {
	var names Names
	sig := []byte(centralSignature)

	pos := 0
	for {
		idx := bytes.Index(data[pos:], sig)
		if idx < 0 {
			break
		}
		pos += idx
		if len(data)-pos < centralHeaderLen {
			break
		}

		record := data[pos:]
		nameLen := int(binary.LittleEndian.Uint16(record[nameLenOffset:]))

		if nameLen > 0 && centralHeaderLen+nameLen <= len(record) {
			raw := record[centralHeaderLen : centralHeaderLen+nameLen]
			d.record(&names, raw)
		}
		pos++
	}

	return names
}

// Legacy decodes raw name bytes the way a CP437-convention unpacker does.
func (d *Decoder) Legacy(raw []byte) string {
	return decode(d.legacy, raw)
}

func (d *Decoder) record(names *Names, raw []byte) {
	legacy := decode(d.legacy, raw)
	regional := decode(d.regional, raw)
	if legacy == "" || regional == "" {
		return
	}
	if strings.HasSuffix(legacy, "/") || strings.HasSuffix(regional, "/") {
		return
	}
	if legacy != regional {
		names.add(legacy, regional)
	}
}

// Scan decodes data with the default code pages.
func Scan(data []byte) Names {
	o := defaultOptions()
	d := &Decoder{legacy: o.legacy, regional: o.regional}
	return d.Scan(data)
}
