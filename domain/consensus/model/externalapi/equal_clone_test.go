package externalapi

import (
	"testing"
)

func initTestBaseBlock() *DomainBlock {
	return &DomainBlock{
		Header: &DomainBlockHeader{
			Version:            1,
			ParentHash:         NewDomainHashFromByteArray(&[DomainHashSize]byte{1}),
			TimeInMilliseconds: 5,
			Nonce:              7,
		},
		Transactions: []*DomainTransaction{initTestBaseTransaction()},
		Coinbase: &DomainTransaction{
			Outputs: []*DomainTransactionOutput{{Value: 50, ScriptPublicKey: []byte{3}}},
			Payload: []byte{4},
		},
	}
}

func initTestBaseTransaction() *DomainTransaction {
	return &DomainTransaction{
		Version: 1,
		Inputs: []*DomainTransactionInput{{
			PreviousOutpoint: DomainOutpoint{TransactionID: DomainTransactionID{hashArray: [DomainHashSize]byte{2}}, Index: 1},
			SignatureScript:  []byte{1, 2, 3},
		}},
		Outputs: []*DomainTransactionOutput{{Value: 10, ScriptPublicKey: []byte{5}}},
	}
}

func TestDomainBlock_Equal(t *testing.T) {
	tests := []struct {
		name           string
		modify         func(block *DomainBlock)
		expectedResult bool
	}{
		{name: "unchanged", modify: func(*DomainBlock) {}, expectedResult: true},
		{name: "version", modify: func(block *DomainBlock) { block.Header.Version = 2 }},
		{name: "parent", modify: func(block *DomainBlock) { block.Header.ParentHash = nil }},
		{name: "nonce", modify: func(block *DomainBlock) { block.Header.Nonce = 8 }},
		{name: "coinbase value", modify: func(block *DomainBlock) { block.Coinbase.Outputs[0].Value = 51 }},
		{name: "no coinbase", modify: func(block *DomainBlock) { block.Coinbase = nil }},
		{name: "transactions", modify: func(block *DomainBlock) { block.Transactions = nil }},
		{name: "input", modify: func(block *DomainBlock) { block.Transactions[0].Inputs[0].PreviousOutpoint.Index = 2 }},
		{name: "signature", modify: func(block *DomainBlock) { block.Transactions[0].Inputs[0].SignatureScript = nil }},
		{name: "payload", modify: func(block *DomainBlock) { block.Transactions[0].Payload = []byte{9} }},
	}

	base := initTestBaseBlock()
	for _, test := range tests {
		other := initTestBaseBlock()
		test.modify(other)
		if base.Equal(other) != test.expectedResult {
			t.Errorf("TestDomainBlock_Equal: '%s': expected %t", test.name, test.expectedResult)
		}
		if other.Equal(base) != test.expectedResult {
			t.Errorf("TestDomainBlock_Equal: '%s': Equal is not symmetric", test.name)
		}
	}

	var nilBlock *DomainBlock
	if !nilBlock.Equal(nil) || nilBlock.Equal(base) {
		t.Fatalf("TestDomainBlock_Equal: unexpected result for nil blocks")
	}
}

func TestDomainBlock_Clone(t *testing.T) {
	blocks := []*DomainBlock{
		initTestBaseBlock(),
		{Header: &DomainBlockHeader{}, Transactions: []*DomainTransaction{}},
	}
	for i, block := range blocks {
		clone := block.Clone()
		if !clone.Equal(block) {
			t.Fatalf("TestDomainBlock_Clone: block %d: clone is not equal to the original", i)
		}
		if clone == block || (block.Coinbase != nil && clone.Coinbase == block.Coinbase) {
			t.Fatalf("TestDomainBlock_Clone: block %d: clone shares pointers with the original", i)
		}
	}

	block := initTestBaseBlock()
	clone := block.Clone()
	clone.Transactions[0].Inputs[0].SignatureScript[0] = 9
	clone.Header.ParentHash = nil
	if !block.Equal(initTestBaseBlock()) {
		t.Fatalf("TestDomainBlock_Clone: modifying the clone changed the original")
	}
}

func TestUTXOEntry(t *testing.T) {
	script := []byte{1, 2}
	entry := NewUTXOEntry(10, script, true)
	script[0] = 9
	if entry.ScriptPublicKey()[0] != 1 {
		t.Fatalf("TestUTXOEntry: entry shares the script with the caller")
	}
	if !entry.Equal(NewUTXOEntry(10, []byte{1, 2}, true)) {
		t.Fatalf("TestUTXOEntry: equal entries are not equal")
	}
	if entry.Equal(NewUTXOEntry(10, []byte{1, 2}, false)) || entry.Equal(NewUTXOEntry(11, []byte{1, 2}, true)) {
		t.Fatalf("TestUTXOEntry: different entries are equal")
	}
}

func TestDomainHashFromString(t *testing.T) {
	hash := NewDomainHashFromByteArray(&[DomainHashSize]byte{0xab, 0xcd})
	parsed, err := NewDomainHashFromString(hash.String())
	if err != nil {
		t.Fatalf("TestDomainHashFromString: %+v", err)
	}
	if !parsed.Equal(hash) {
		t.Fatalf("TestDomainHashFromString: got %s, want %s", parsed, hash)
	}
	_, err = NewDomainHashFromString("abcd")
	if err == nil {
		t.Fatalf("TestDomainHashFromString: a short string was accepted")
	}
}
