package xmltext

// Kind identifies the syntactic kind of an XML token.
type Kind byte

const (
	KindNone Kind = iota
	KindStartElement
	KindEmptyElement
	KindEndElement
	KindCharData
	KindCDATA
)

// String returns a stable name for the kind, suitable for debugging.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindStartElement:
		return "StartElement"
	case KindEmptyElement:
		return "EmptyElement"
	case KindEndElement:
		return "EndElement"
	case KindCharData:
		return "CharData"
	case KindCDATA:
		return "CDATA"
	default:
		return "Unknown"
	}
}

// IsElement reports whether the kind is a start, empty, or end element.
func (k Kind) IsElement() bool {
	return k == KindStartElement || k == KindEmptyElement || k == KindEndElement
}

// IsText reports whether the kind carries character content.
func (k Kind) IsText() bool {
	return k == KindCharData || k == KindCDATA
}
