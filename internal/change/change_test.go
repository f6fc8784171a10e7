package change

import (
	"encoding/base64"
	"encoding/json"
	"testing"
)

func TestCreateRoundTrip(t *testing.T) {
	c := NewCreate("hello", false)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	var got Change
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Variant() != KindCreate || got.Create.Content != "hello" || got.Create.Binary {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestBinaryCreateRoundTripsNonUTF8Bytes(t *testing.T) {
	raw := []byte{0x00, 0xff, 0xfe, 0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	c := NewCreate(string(raw), true)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	var wire struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatal(err)
	}
	if _, err := base64.StdEncoding.DecodeString(wire.Content); err != nil {
		t.Fatalf("expected binary content to be base64 on the wire, got %q: %v", wire.Content, err)
	}

	var got Change
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Create == nil || !got.Create.Binary {
		t.Fatalf("expected a binary create variant, got %+v", got)
	}
	if got.Create.Content != string(raw) {
		t.Fatalf("binary content did not round trip byte-for-byte: got %q, want %q", got.Create.Content, string(raw))
	}
}

func TestDeleteRoundTrip(t *testing.T) {
	c := NewDelete()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"delete"}` {
		t.Fatalf("unexpected delete encoding: %s", data)
	}
	var got Change
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Variant() != KindDelete {
		t.Fatalf("expected delete variant, got %+v", got)
	}
}

func TestOpsEncodedAsBareArray(t *testing.T) {
	c := NewOps([]Op{{Type: OpInsert, Position: 0, Content: "x"}})
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != '[' {
		t.Fatalf("expected ops to encode as a bare array, got %s", data)
	}
	var got Change
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Variant() != KindOps || len(got.Ops) != 1 || got.Ops[0].Content != "x" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestEmptyOpsRoundTrip(t *testing.T) {
	c := NewOps(nil)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [] for nil ops, got %s", data)
	}
	var got Change
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Variant() != KindOps {
		t.Fatalf("expected ops variant for empty array, got %+v", got)
	}
}

func TestUnknownTaggedTypeErrors(t *testing.T) {
	var got Change
	err := json.Unmarshal([]byte(`{"type":"rename"}`), &got)
	if err == nil {
		t.Fatal("expected error decoding unknown change type")
	}
}
