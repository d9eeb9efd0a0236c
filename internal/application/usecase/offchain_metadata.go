// internal/application/usecase/offchain_metadata.go
package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Attribute is one {trait_type, value} pair of the off-chain JSON document.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// OffchainMetadata is the JSON document the on-chain uri points at.
type OffchainMetadata struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// BuildOffchainMetadata renders the document. Attributes with an empty trait are dropped.
func BuildOffchainMetadata(name, symbol, description, imageURL string, attrs []Attribute) ([]byte, error) {
	name = strings.TrimSpace(name)
	symbol = strings.TrimSpace(symbol)
	imageURL = strings.TrimSpace(imageURL)
	if name == "" || symbol == "" {
		return nil, fmt.Errorf("offchain metadata: name or symbol is empty")
	}
	if imageURL == "" {
		return nil, ErrImageRequired
	}

	doc := OffchainMetadata{
		Name:        name,
		Symbol:      symbol,
		Description: strings.TrimSpace(description),
		Image:       imageURL,
		Attributes:  make([]Attribute, 0, len(attrs)),
	}
	for _, a := range attrs {
		t := strings.TrimSpace(a.TraitType)
		if t == "" {
			continue
		}
		doc.Attributes = append(doc.Attributes, Attribute{TraitType: t, Value: a.Value})
	}
	return json.Marshal(doc)
}
