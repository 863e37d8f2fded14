package domain

// DocumentKind identifies a supported input kind.
type DocumentKind string

// Supported input kinds.
const (
	KindTranscript DocumentKind = "transcript"
	KindPDF        DocumentKind = "pdf"
	KindEPUB       DocumentKind = "epub"
	KindText       DocumentKind = "text"
)

// AllKinds lists every supported kind in display order.
func AllKinds() []DocumentKind {
	return []DocumentKind{KindTranscript, KindPDF, KindEPUB, KindText}
}

// IsValid returns true if the kind is recognised.
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindTranscript, KindPDF, KindEPUB, KindText:
		return true
	default:
		return false
	}
}

// CacheDir returns the directory name used for this kind in the cache tree.
func (k DocumentKind) CacheDir() string {
	switch k {
	case KindTranscript:
		return "trans"
	case KindPDF:
		return "pdf"
	case KindEPUB:
		return "epub"
	case KindText:
		return "txt"
	default:
		return ""
	}
}

// String returns the string representation.
func (k DocumentKind) String() string {
	return string(k)
}
