package xmlcodec

import (
	"log/slog"
)

// DefaultIndent is the indentation Marshal uses unless WithIndent says otherwise.
const DefaultIndent = "  "

type options struct {
	logger      *slog.Logger
	indent      string
	localNames  bool
	rootName    string
	defaultNS   string
	namespaces  []Namespace
	declaration bool
	maxInput    int64
}

// Option configures an Encoder or Decoder.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:      slog.New(slog.DiscardHandler),
		indent:      DefaultIndent,
		declaration: true,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithLogger sets the logger receiving debug records about structural
// decisions. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIndent sets the indentation per nesting level. An empty string
// writes the document on a single line.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// MatchLocalName makes the decoder compare element names by local part
// only and report keys without prefix.
func MatchLocalName(on bool) Option {
	return func(o *options) { o.localNames = on }
}

// WithRootName overrides the root element name derived from the value.
func WithRootName(name string) Option {
	return func(o *options) { o.rootName = name }
}

// WithDefaultNamespace declares the default namespace on the root element.
func WithDefaultNamespace(uri string) Option {
	return func(o *options) { o.defaultNS = uri }
}

// WithNamespace declares prefix on the root element.
func WithNamespace(prefix, uri string) Option {
	return func(o *options) {
		o.namespaces = append(o.namespaces, Namespace{Prefix: prefix, URI: uri})
	}
}

// WithDeclaration controls whether the XML declaration is written.
func WithDeclaration(on bool) Option {
	return func(o *options) { o.declaration = on }
}

// WithMaxInputSize limits the number of bytes a Decoder reads. Zero means
// no limit.
func WithMaxInputSize(n int64) Option {
	return func(o *options) { o.maxInput = n }
}

// namespaceAttrs renders the declarations written on the root element.
func (o *options) namespaceAttrs() []Attr {
	var attrs []Attr
	if o.defaultNS != "" {
		attrs = append(attrs, Attr{Name: QName{Local: "xmlns"}, Value: o.defaultNS})
	}
	for _, ns := range o.namespaces {
		if ns.Prefix == "" {
			attrs = append(attrs, Attr{Name: QName{Local: "xmlns"}, Value: ns.URI})
			continue
		}
		attrs = append(attrs, Attr{Name: QName{Prefix: "xmlns", Local: ns.Prefix}, Value: ns.URI})
	}
	return attrs
}
