package codec

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
)

// Proto is a codec for values implementing proto.Message. Values of any other
// type are rejected with ErrNotProtoMessage.
type Proto struct{}

// Encode marshals m onto w. The protobuf wire format is not self-delimiting,
// so the message occupies the remainder of the stream.
func (Proto) Encode(w io.Writer, v any) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("%w (got %T)", ErrNotProtoMessage, v)
	}
	b, err := proto.Marshal(m)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Decode reads r to EOF and unmarshals the bytes into v.
func (Proto) Decode(r io.Reader, v any) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("%w (got %T)", ErrNotProtoMessage, v)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return proto.Unmarshal(b, m)
}

// Name returns "protobuf".
func (Proto) Name() string { return "protobuf" }

func init() {
	MustRegister(Proto{})
	MustAlias("proto", "protobuf")
}
