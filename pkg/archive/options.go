package archive

import (
	"golang.org/x/text/encoding"

	"github.com/agentstation/menumap/pkg/constants"
)

// options holds the code pages used to decode entry names.
type options struct {
	legacy   encoding.Encoding
	regional encoding.Encoding
}

// Option configures a Decoder or an Archive.
type Option func(*options) error

func defaultOptions() *options {
	return &options{
		legacy:   codePages[constants.DefaultLegacyEncoding],
		regional: codePages[constants.DefaultRegionalEncoding],
	}
}

func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithLegacyEncoding selects the code page a naive unpacker would use.
func WithLegacyEncoding(name string) Option {
	return func(o *options) error {
		enc, err := Encoding(name)
		if err != nil {
			return err
		}
		o.legacy = enc
		return nil
	}
}

// WithRegionalEncoding selects the code page the archive was written with.
func WithRegionalEncoding(name string) Option {
	return func(o *options) error {
		enc, err := Encoding(name)
		if err != nil {
			return err
		}
		o.regional = enc
		return nil
	}
}
