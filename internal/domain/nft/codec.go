package nft

import (
	"fmt"

	"github.com/near/borsh-go"
)

// EncodeMetadata serializes a metadata record in its on-account layout.
func EncodeMetadata(m Metadata) ([]byte, error) {
	b, err := borsh.Serialize(m)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return b, nil
}

// DecodeMetadata parses an on-account metadata record. Trailing padding is ignored.
func DecodeMetadata(data []byte) (Metadata, error) {
	var m Metadata
	if len(data) == 0 {
		return m, ErrInvalidRecord
	}
	if err := borsh.Deserialize(&m, data); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if m.Key != KeyMetadataV1 {
		return Metadata{}, fmt.Errorf("%w: key=%d", ErrInvalidRecord, m.Key)
	}
	return m, nil
}

func EncodeMasterEdition(e MasterEdition) ([]byte, error) {
	b, err := borsh.Serialize(e)
	if err != nil {
		return nil, fmt.Errorf("encode master edition: %w", err)
	}
	return b, nil
}

func DecodeMasterEdition(data []byte) (MasterEdition, error) {
	var e MasterEdition
	if len(data) == 0 {
		return e, ErrInvalidRecord
	}
	if err := borsh.Deserialize(&e, data); err != nil {
		return MasterEdition{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if e.Key != KeyMasterEditionV2 {
		return MasterEdition{}, fmt.Errorf("%w: key=%d", ErrInvalidRecord, e.Key)
	}
	return e, nil
}
