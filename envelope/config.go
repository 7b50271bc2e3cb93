package envelope

// NewFromKinds builds an Envelope from kind selectors rather than concrete
// Serializer/Compressor values, for callers wiring envelope configuration
// straight from a config file.
func NewFromKinds(s SerializerKind, c CompressionKind) (*Envelope, error) {
	serializer, err := NewSerializer(s)
	if err != nil {
		return nil, err
	}
	compressor, err := NewCompressor(c)
	if err != nil {
		return nil, err
	}
	return New(serializer, compressor), nil
}
