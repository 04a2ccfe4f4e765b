package tomd

// ConstructName names a syntactic construct the serializer can be inside
// of. Unsafe patterns are scoped by these names.
type ConstructName string

// Constructs known to the default handlers.
const (
	ConstructAutolink                  ConstructName = "autolink"
	ConstructBlockquote                ConstructName = "blockquote"
	ConstructCodeFenced                ConstructName = "codeFenced"
	ConstructCodeFencedLangGraveAccent ConstructName = "codeFencedLangGraveAccent"
	ConstructCodeFencedLangTilde       ConstructName = "codeFencedLangTilde"
	ConstructCodeFencedMetaGraveAccent ConstructName = "codeFencedMetaGraveAccent"
	ConstructCodeFencedMetaTilde       ConstructName = "codeFencedMetaTilde"
	ConstructDestinationLiteral        ConstructName = "destinationLiteral"
	ConstructDestinationRaw            ConstructName = "destinationRaw"
	ConstructEmphasis                  ConstructName = "emphasis"
	ConstructHeadingAtx                ConstructName = "headingAtx"
	ConstructHeadingSetext             ConstructName = "headingSetext"
	ConstructImage                     ConstructName = "image"
	ConstructImageReference            ConstructName = "imageReference"
	ConstructLabel                     ConstructName = "label"
	ConstructLink                      ConstructName = "link"
	ConstructLinkReference             ConstructName = "linkReference"
	ConstructList                      ConstructName = "list"
	ConstructListItem                  ConstructName = "listItem"
	ConstructParagraph                 ConstructName = "paragraph"
	ConstructPhrasing                  ConstructName = "phrasing"
	ConstructReference                 ConstructName = "reference"
	ConstructStrong                    ConstructName = "strong"
	ConstructTitleApostrophe           ConstructName = "titleApostrophe"
	ConstructTitleQuote                ConstructName = "titleQuote"
)

var defaultConstructs = []ConstructName{
	ConstructAutolink,
	ConstructBlockquote,
	ConstructCodeFenced,
	ConstructCodeFencedLangGraveAccent,
	ConstructCodeFencedLangTilde,
	ConstructCodeFencedMetaGraveAccent,
	ConstructCodeFencedMetaTilde,
	ConstructDestinationLiteral,
	ConstructDestinationRaw,
	ConstructEmphasis,
	ConstructHeadingAtx,
	ConstructHeadingSetext,
	ConstructImage,
	ConstructImageReference,
	ConstructLabel,
	ConstructLink,
	ConstructLinkReference,
	ConstructList,
	ConstructListItem,
	ConstructParagraph,
	ConstructPhrasing,
	ConstructReference,
	ConstructStrong,
	ConstructTitleApostrophe,
	ConstructTitleQuote,
}

// ConstructsWithoutPhrasingSpans returns the constructs that occur in
// phrasing but whose own syntax ends on a different character, so inline
// span markers inside them need no escaping. Every unsafe pattern for an
// inline span delimiter should use this list as its NotInConstruct.
func ConstructsWithoutPhrasingSpans() []ConstructName {
	return []ConstructName{
		ConstructAutolink,
		ConstructDestinationLiteral,
		ConstructDestinationRaw,
		ConstructReference,
		ConstructTitleQuote,
		ConstructTitleApostrophe,
	}
}
