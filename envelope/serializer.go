package envelope

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// SerializerKind selects one of the built-in Serializer implementations,
// matching the serializer configuration option of spec §6.
type SerializerKind int

const (
	SerializerNone SerializerKind = iota
	SerializerBinary
	SerializerCBOR
	SerializerJSON
)

// NewSerializer builds the Serializer named by kind.
func NewSerializer(kind SerializerKind) (Serializer, error) {
	switch kind {
	case SerializerNone:
		return NoneSerializer{}, nil
	case SerializerBinary:
		return BinarySerializer{}, nil
	case SerializerCBOR:
		return CBORSerializer{}, nil
	case SerializerJSON:
		return JSONSerializer{}, nil
	default:
		return nil, fmt.Errorf("envelope: unknown serializer kind %d", kind)
	}
}

// NoneSerializer passes raw bytes through unchanged. Marshal requires v to
// already be a []byte (or *[]byte for Unmarshal) -- it is the "minimal
// build emits raw bytes" case of spec §4.6.
type NoneSerializer struct{}

func (NoneSerializer) Marshal(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case *[]byte:
		return *b, nil
	default:
		return nil, fmt.Errorf("envelope: none serializer requires []byte, got %T", v)
	}
}

func (NoneSerializer) Unmarshal(data []byte, v any) error {
	dst, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("envelope: none serializer requires *[]byte, got %T", v)
	}
	*dst = append((*dst)[:0], data...)
	return nil
}

// BinarySerializer uses encoding/gob. No pack dependency covers generic
// binary serialization without either codegen (protobuf) or an
// application-defined schema, so this stage uses the standard library --
// see DESIGN.md.
type BinarySerializer struct{}

func (BinarySerializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (BinarySerializer) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// CBORSerializer uses github.com/fxamacker/cbor/v2, adopted from the
// shurlinet-shurli sibling's IPLD codec stack.
type CBORSerializer struct{}

func (CBORSerializer) Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (CBORSerializer) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

// JSONSerializer uses encoding/json.
type JSONSerializer struct{}

func (JSONSerializer) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONSerializer) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
