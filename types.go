package mdstrike

import (
	"github.com/alnah/go-mdstrike/internal/frommd"
	"github.com/alnah/go-mdstrike/internal/mdast"
	"github.com/alnah/go-mdstrike/internal/strikethrough"
	"github.com/alnah/go-mdstrike/internal/tomd"
)

// Tree types.
type (
	Node          = mdast.Node
	Kind          = mdast.Kind
	Point         = mdast.Point
	Position      = mdast.Position
	ReferenceType = mdast.ReferenceType
)

// Node kinds.
const (
	KindRoot           = mdast.KindRoot
	KindParagraph      = mdast.KindParagraph
	KindHeading        = mdast.KindHeading
	KindThematicBreak  = mdast.KindThematicBreak
	KindBlockquote     = mdast.KindBlockquote
	KindList           = mdast.KindList
	KindListItem       = mdast.KindListItem
	KindCode           = mdast.KindCode
	KindHTML           = mdast.KindHTML
	KindText           = mdast.KindText
	KindEmphasis       = mdast.KindEmphasis
	KindStrong         = mdast.KindStrong
	KindDelete         = mdast.KindDelete
	KindInlineCode     = mdast.KindInlineCode
	KindBreak          = mdast.KindBreak
	KindLink           = mdast.KindLink
	KindImage          = mdast.KindImage
	KindLinkReference  = mdast.KindLinkReference
	KindImageReference = mdast.KindImageReference
)

// Reference types.
const (
	ReferenceShortcut  = mdast.ReferenceShortcut
	ReferenceCollapsed = mdast.ReferenceCollapsed
	ReferenceFull      = mdast.ReferenceFull
)

// Extension points for custom syntax. A ParseExtension maps token types to
// tree construction handlers; a SerializeExtension maps node kinds to
// Markdown handlers and declares which characters need escaping where.
type (
	ParseExtension     = frommd.Extension
	ParseContext       = frommd.Context
	Token              = frommd.Token
	SerializeExtension = tomd.Extension
	SerializeState     = tomd.State
	Handler            = tomd.Handler
	Info               = tomd.Info
	Tracker            = tomd.Tracker
	UnsafePattern      = tomd.UnsafePattern
	ConstructName      = tomd.ConstructName
	SafeConfig         = tomd.SafeConfig
)

// StrikethroughFromMarkdown returns the tree construction half of
// strikethrough. New adds it unless WithoutStrikethrough is given. Each
// call returns a fresh value, so changing it affects nobody else.
func StrikethroughFromMarkdown() ParseExtension {
	return strikethrough.FromMarkdown()
}

// StrikethroughToMarkdown returns the serializer half of strikethrough.
func StrikethroughToMarkdown() SerializeExtension {
	return strikethrough.ToMarkdown()
}

// Option configures a Processor.
type Option func(*processorConfig)

// processorConfig holds internal configuration for Processor.
type processorConfig struct {
	serialize     tomd.Options
	positions     bool
	strikethrough bool
	parseExts     []frommd.Extension
	serializeExts []tomd.Extension
}

func defaultConfig() processorConfig {
	return processorConfig{positions: true, strikethrough: true}
}

// WithQuote sets the title quote: '"' (default) or '\''.
func WithQuote(c byte) Option {
	return func(cfg *processorConfig) {
		cfg.serialize.Quote = c
	}
}

// WithEmphasis sets the emphasis marker: '*' (default) or '_'.
func WithEmphasis(c byte) Option {
	return func(cfg *processorConfig) {
		cfg.serialize.Emphasis = c
	}
}

// WithStrong sets the strong marker: '*' (default) or '_'.
func WithStrong(c byte) Option {
	return func(cfg *processorConfig) {
		cfg.serialize.Strong = c
	}
}

// WithBullet sets the unordered list marker: '*' (default), '+' or '-'.
func WithBullet(c byte) Option {
	return func(cfg *processorConfig) {
		cfg.serialize.Bullet = c
	}
}

// WithBulletOrdered sets the ordered list delimiter: '.' (default) or ')'.
func WithBulletOrdered(c byte) Option {
	return func(cfg *processorConfig) {
		cfg.serialize.BulletOrdered = c
	}
}

// WithFence sets the code fence marker: '`' (default) or '~'.
func WithFence(c byte) Option {
	return func(cfg *processorConfig) {
		cfg.serialize.Fence = c
	}
}

// WithRule sets the thematic break marker: '*' (default), '-' or '_'.
func WithRule(c byte) Option {
	return func(cfg *processorConfig) {
		cfg.serialize.Rule = c
	}
}

// WithSetext writes rank 1 and 2 headings underlined.
func WithSetext() Option {
	return func(cfg *processorConfig) {
		cfg.serialize.Setext = true
	}
}

// WithResourceLink always writes links as [text](url), never <url>.
func WithResourceLink() Option {
	return func(cfg *processorConfig) {
		cfg.serialize.ResourceLink = true
	}
}

// WithPositions controls whether parsed nodes record their source span.
// Positions are on by default.
func WithPositions(on bool) Option {
	return func(cfg *processorConfig) {
		cfg.positions = on
	}
}

// WithoutStrikethrough disables ~~strikethrough~~ on both sides.
func WithoutStrikethrough() Option {
	return func(cfg *processorConfig) {
		cfg.strikethrough = false
	}
}

// WithParseExtensions registers tree construction extensions, applied
// after the built-in ones.
func WithParseExtensions(exts ...ParseExtension) Option {
	return func(cfg *processorConfig) {
		cfg.parseExts = append(cfg.parseExts, exts...)
	}
}

// WithSerializeExtensions registers serializer extensions, applied after
// the built-in ones.
func WithSerializeExtensions(exts ...SerializeExtension) Option {
	return func(cfg *processorConfig) {
		cfg.serializeExts = append(cfg.serializeExts, exts...)
	}
}
