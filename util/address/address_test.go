package address

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/kaspanet/blocktree/domain/consensus/utils/transactionhelper"
	"github.com/pkg/errors"
)

func TestEncodeDecode(t *testing.T) {
	_, scriptPublicKey, err := transactionhelper.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %+v", err)
	}

	encoded := Encode(scriptPublicKey)
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("TestEncodeDecode: Decode(%s): %+v", encoded, err)
	}
	if !bytes.Equal(decoded, scriptPublicKey) {
		t.Fatalf("TestEncodeDecode: got %x, want %x", decoded, scriptPublicKey)
	}
}

func TestDecodeErrors(t *testing.T) {
	_, scriptPublicKey, err := transactionhelper.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %+v", err)
	}
	valid := Encode(scriptPublicKey)
	corrupted := []byte(valid)
	if corrupted[5] == '2' {
		corrupted[5] = '3'
	} else {
		corrupted[5] = '2'
	}

	tests := []struct {
		name    string
		address string
	}{
		{name: "empty", address: ""},
		{name: "bad checksum", address: string(corrupted)},
		{name: "wrong version", address: base58.CheckEncode(scriptPublicKey, Version+1)},
		{name: "not a public key", address: Encode([]byte{1, 2, 3})},
	}
	for _, test := range tests {
		_, err := Decode(test.address)
		if !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("TestDecodeErrors: %s: expected ErrInvalidAddress, got %v", test.name, err)
		}
	}
}
