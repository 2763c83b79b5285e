package bridge

// BlockKind discriminates canonical content block variants.
type BlockKind string

const (
	BlockText  BlockKind = "text"
	BlockImage BlockKind = "image"
)

// MIMEPNG is the media type for all bridge-produced images. The bridge
// always encodes captures as PNG; the format is not negotiable.
const MIMEPNG = "image/png"

// Block is one canonical content unit. Exactly one variant is populated,
// selected by Kind.
type Block struct {
	Kind BlockKind `json:"kind"`

	// Text carries the body for text blocks.
	Text string `json:"text,omitempty"`

	// Data carries base64 image bytes for image blocks. Payloads are
	// passed through from the upstream unmodified, never re-encoded.
	Data     string `json:"data,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
}

// TextBlock builds a text content block.
func TextBlock(text string) Block {
	return Block{Kind: BlockText, Text: text}
}

// ImageBlock builds an image content block from base64 data.
func ImageBlock(data, mimeType string) Block {
	return Block{Kind: BlockImage, Data: data, MIMEType: mimeType}
}

// Result is the sole return shape of a normalized handler: an ordered,
// never-empty sequence of content blocks. Order is caller-meaningful
// (a caption block precedes its image).
type Result struct {
	Content []Block `json:"content"`
}

// IsEmpty reports whether the result carries no blocks. Normalization
// guarantees this is false for every result it produces.
func (r Result) IsEmpty() bool {
	return len(r.Content) == 0
}
