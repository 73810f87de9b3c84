// Package codec は gRPC のコンテンツサブタイプ "json" 用のコーデックを提供します。
package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name はコーデック名です。クライアントは grpc.CallContentSubtype(Name) で指定します。
const Name = "json"

var unmarshalOptions = protojson.UnmarshalOptions{DiscardUnknown: true}

// JSON は proto.Message を protojson で、それ以外の構造体を encoding/json で変換するコーデックです。
type JSON struct{}

// Marshal は v を JSON へ変換します。
func (JSON) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal は JSON を v へ変換します。空のペイロードはゼロ値として扱います。
func (JSON) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return unmarshalOptions.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: unmarshal %T: %w", v, err)
	}
	return nil
}

// Name はコーデック名を返します。
func (JSON) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(JSON{})
}
